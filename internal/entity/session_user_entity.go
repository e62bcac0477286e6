package entity

// SessionUser is the identity established by an OAuth provider for the
// lifetime of a browser session. It is never persisted outside the session.
type SessionUser struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Viewer is what the session layer knows about the caller of a request.
// Fault is set when the session exists but could not be read.
type Viewer struct {
	User          *SessionUser
	Authenticated bool
	Fault         error
}

// UserId returns the session user id, or nil when there is no user.
func (v Viewer) UserId() *string {
	if v.User == nil {
		return nil
	}
	id := v.User.Id
	return &id
}

// LoggedIn reports whether the viewer has a readable, authenticated session.
func (v Viewer) LoggedIn() bool {
	return v.Fault == nil && v.User != nil && v.Authenticated
}
