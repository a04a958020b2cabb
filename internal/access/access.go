// Package access describes who is making a request and which capabilities
// an operation demands of them.
package access

import "context"

// Identity is the caller of a request. The zero value is an anonymous
// visitor.
type Identity struct {
	UserID   uint64
	IsAdmin  bool
	FullName string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (id Identity) Authenticated() bool { return id.UserID != 0 }

// Member reports whether the identity is a logged-in non-admin user.
func (id Identity) Member() bool { return id.Authenticated() && !id.IsAdmin }

// Admin reports whether the identity is a logged-in administrator.
func (id Identity) Admin() bool { return id.Authenticated() && id.IsAdmin }

// Owns reports whether the identity is the owner of a record held by userID.
func (id Identity) Owns(userID uint64) bool {
	return id.Authenticated() && id.UserID == userID
}

// Predicate is a capability check. Denial carries the message key shown to
// the caller.
type Predicate struct {
	Name string
	Key  string
	Test func(Identity) bool
}

// Allow reports whether id satisfies p.
func (p Predicate) Allow(id Identity) bool { return p.Test(id) }

var (
	AuthenticatedUser = Predicate{Name: "authenticated", Key: "auth.required", Test: Identity.Authenticated}
	AdminUser         = Predicate{Name: "admin", Key: "auth.admin_required", Test: Identity.Admin}
	MemberUser        = Predicate{Name: "member", Key: "auth.members_only", Test: Identity.Member}
)

// FirstDenied returns the first predicate id fails, if any.
func FirstDenied(id Identity, ps ...Predicate) (Predicate, bool) {
	for _, p := range ps {
		if !p.Allow(id) {
			return p, true
		}
	}
	return Predicate{}, false
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, or the anonymous identity.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
