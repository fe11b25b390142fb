package shared

import "context"

// Namespace identifies one independently persisted store.
type Namespace string

const (
	NamespaceCart      Namespace = "cart"
	NamespaceFavorites Namespace = "favorites"
	NamespaceReviews   Namespace = "reviews"
	NamespaceUser      Namespace = "user"
)

// AllNamespaces lists every namespace the storefront persists.
func AllNamespaces() []Namespace {
	return []Namespace{NamespaceCart, NamespaceFavorites, NamespaceReviews, NamespaceUser}
}

// IsValid reports whether the namespace is one the storefront knows about
func (n Namespace) IsValid() bool {
	switch n {
	case NamespaceCart, NamespaceFavorites, NamespaceReviews, NamespaceUser:
		return true
	}
	return false
}

// String returns the namespace key
func (n Namespace) String() string {
	return string(n)
}

// StateStorage is the durable key/value store each entity store writes its
// full serialized state to. Save replaces the previous value. Load reports
// found=false when nothing was ever saved under the namespace.
type StateStorage interface {
	Save(ctx context.Context, ns Namespace, payload []byte) error
	Load(ctx context.Context, ns Namespace) (payload []byte, found bool, err error)
}
