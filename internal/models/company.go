package models

// Company is the database representation of a tenant.
type Company struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Settings []byte `db:"settings"` // jsonb
	LifecycleFields
}

// CompanyMember is the database representation of a membership row.
type CompanyMember struct {
	ID        int64  `db:"id"`
	CompanyID int64  `db:"company_id"`
	UserID    int64  `db:"user_id"`
	Role      string `db:"role"`
	UserName  string `db:"-"` // joined from users on reads with members
	UserEmail string `db:"-"`
	LifecycleFields
}
