// Package repomanager vends the record stores used by the services.
package repomanager

import (
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// RepositoryManager hands out the user and snippet stores. Each store is
// independent and guards its own state.
type RepositoryManager interface {
	Users() users.Repository
	Snippets() snippets.Repository
}
