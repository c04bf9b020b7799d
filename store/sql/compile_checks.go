package sqlstore

import "github.com/goliatone/go-testhooks/core"

var (
	_ core.TestStore     = (*TestStore)(nil)
	_ core.ResultStore   = (*ResultStore)(nil)
	_ core.ProjectStore  = (*ProjectStore)(nil)
	_ core.IdentityStore = (*UserStore)(nil)
	_ core.StoreProvider = (*RepositoryFactory)(nil)
)
