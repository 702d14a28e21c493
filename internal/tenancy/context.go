package tenancy

// Context is the trusted tenant pair every data access is bound to.
// It is only ever constructed from verified authentication state (the JWT
// claims decoded by the auth middleware), never from client-supplied
// request parameters.
type Context struct {
	AccountID int64
	CompanyID int64
}

// NewContext fails closed: a pair with a missing member never produces a
// usable Context.
func NewContext(accountID, companyID int64) (Context, error) {
	tc := Context{AccountID: accountID, CompanyID: companyID}
	if err := tc.Validate(); err != nil {
		return Context{}, err
	}
	return tc, nil
}

func (tc Context) Validate() error {
	if tc.AccountID <= 0 || tc.CompanyID <= 0 {
		return ErrUnboundContext
	}
	return nil
}
