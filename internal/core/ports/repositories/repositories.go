package repositories

// RepositoryProvider aggregates the repository facades handed to the
// service layer. All facades share one pgx pool; TxManager hands out the
// transactions the ...InTx methods participate in.
type RepositoryProvider struct {
	TxManager        TransactionManager
	UserRepo         UserRepositoryFacade
	CredentialsRepo  CredentialsRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	MemberRepo       CompanyMemberRepositoryFacade
	RefreshTokenRepo RefreshTokenRepositoryFacade
	ResetTokenRepo   PasswordResetTokenRepositoryFacade
	AuditRepo        AuditEventRepositoryFacade
	AppLogRepo       AppLogRepositoryFacade
}
