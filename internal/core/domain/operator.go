package domain

// Operator is a back-office user allowed to confirm vouchers and reset safes.
type Operator struct {
	OperatorID   string `json:"operatorID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
