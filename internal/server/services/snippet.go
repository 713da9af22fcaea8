package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/cryptox"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
)

// SnippetService decides what a caller may read or create and moves bodies
// through the encryption envelope on the way in and out.
//
// Access rules:
//   - public snippets are visible to everyone;
//   - a private snippet is visible only to its owner;
//   - an anonymous caller asking for a private id gets common.ErrNotFound,
//     exactly as for a missing id;
//   - an authenticated non-owner gets common.ErrForbidden.
type SnippetService struct {
	repomanager repomanager.RepositoryManager
	envelope    *cryptox.Envelope
	tokens      *auth.TokenService
}

func NewSnippetService(m repomanager.RepositoryManager, envelope *cryptox.Envelope, tokens *auth.TokenService) *SnippetService {
	return &SnippetService{repomanager: m, envelope: envelope, tokens: tokens}
}

// Authenticate turns a bearer token into a caller identity. Any failure is
// common.ErrInvalidOrExpiredToken.
func (s *SnippetService) Authenticate(token string) (*auth.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return auth.IdentityFromClaims(claims), nil
}

// Create stores a new snippet. Anonymous callers may only create public
// snippets.
func (s *SnippetService) Create(ctx context.Context, caller *auth.Identity, language, code string, private bool) (*models.SnippetView, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, fmt.Errorf("%w: language is required", common.ErrValidation)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", common.ErrValidation)
	}
	if private && caller == nil {
		return nil, common.ErrAuthenticationRequired
	}

	body, err := s.envelope.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("error encrypting snippet: %w", err)
	}

	snippet := &models.Snippet{Language: language, Body: body, CreatedAt: time.Now()}
	if private {
		owner := caller.UserID
		snippet.OwnerID = &owner
	}

	stored, err := s.repomanager.Snippets().Create(ctx, snippet)
	if err != nil {
		return nil, fmt.Errorf("error creating snippet: %w", err)
	}

	return toView(stored, code), nil
}

// Get returns one snippet the caller may see.
func (s *SnippetService) Get(ctx context.Context, caller *auth.Identity, id int64) (*models.SnippetView, error) {
	snippet, err := s.repomanager.Snippets().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading snippet: %w", err)
	}

	if err := checkReadAccess(caller, snippet); err != nil {
		return nil, err
	}

	code, err := s.envelope.Decode(snippet.Body)
	if err != nil {
		return nil, fmt.Errorf("snippet %d: %w", id, err)
	}
	return toView(snippet, code), nil
}

// List returns public snippets plus, for an authenticated caller, the
// caller's own.
func (s *SnippetService) List(ctx context.Context, caller *auth.Identity) ([]*models.SnippetView, error) {
	f := snippets.Filter{IncludePublic: true}
	if caller != nil {
		owner := caller.UserID
		f.OwnerID = &owner
	}
	return s.list(ctx, f)
}

// ListMine returns only the caller's own snippets.
func (s *SnippetService) ListMine(ctx context.Context, caller *auth.Identity) ([]*models.SnippetView, error) {
	if caller == nil {
		return nil, common.ErrAuthenticationRequired
	}
	owner := caller.UserID
	return s.list(ctx, snippets.Filter{OwnerID: &owner})
}

// list decodes every match; a record that fails to decode is returned
// flagged as unreadable instead of failing the whole listing.
func (s *SnippetService) list(ctx context.Context, f snippets.Filter) ([]*models.SnippetView, error) {
	items, err := s.repomanager.Snippets().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing snippets: %w", err)
	}

	views := make([]*models.SnippetView, 0, len(items))
	for _, item := range items {
		code, err := s.envelope.Decode(item.Body)
		if err != nil {
			v := toView(item, "")
			v.Unreadable = true
			views = append(views, v)
			continue
		}
		views = append(views, toView(item, code))
	}
	return views, nil
}

func checkReadAccess(caller *auth.Identity, s *models.Snippet) error {
	switch {
	case s.IsPublic():
		return nil
	case caller == nil:
		return common.ErrNotFound
	case s.OwnedBy(caller.UserID):
		return nil
	default:
		return common.ErrForbidden
	}
}

func toView(s *models.Snippet, code string) *models.SnippetView {
	return &models.SnippetView{
		ID:       s.ID,
		Language: s.Language,
		Code:     code,
		Private:  !s.IsPublic(),
		OwnerID:  s.OwnerID,
	}
}
