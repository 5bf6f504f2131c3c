package users

// Anonymous is the null account representing an unauthenticated visitor. It
// satisfies the same Account contract as *User with every role query false,
// so view gating code never branches on "is there a user at all".
type Anonymous struct{}

func (Anonymous) Name() string { return "Anonymous" }

func (Anonymous) IsAdmin() bool   { return false }
func (Anonymous) IsEditor() bool  { return false }
func (Anonymous) IsCreator() bool { return false }

func (Anonymous) IsAuthenticated() bool { return false }
func (Anonymous) IsAnonymous() bool     { return true }

var _ Account = Anonymous{}
