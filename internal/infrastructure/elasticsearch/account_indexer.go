// Package elasticsearch mirrors newly created accounts into a search index.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/repository"
)

const indexTimeout = 3 * time.Second

type accountDocument struct {
	ID                   string   `json:"id"`
	Role                 string   `json:"role"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	WhatsApp             string   `json:"whatsapp"`
	PendingVerifications []string `json:"pending_verifications"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

// AccountIndexer writes account documents; the password hash is never indexed.
type AccountIndexer struct {
	Client *es.Client
	Index  string
	Logger logrus.FieldLogger
}

func NewAccountIndexer(client *es.Client, index string, logger logrus.FieldLogger) *AccountIndexer {
	return &AccountIndexer{Client: client, Index: index, Logger: logger}
}

// IndexAccount upserts the document for a. A nil indexer or client is a no-op.
func (ix *AccountIndexer) IndexAccount(ctx context.Context, a *entity.Account) error {
	if ix == nil || ix.Client == nil || ix.Index == "" {
		return nil
	}
	pending := make([]string, 0, 2)
	for _, p := range a.PendingVerifications() {
		pending = append(pending, string(p))
	}
	body, err := json.Marshal(accountDocument{
		ID:                   a.ID().Value(),
		Role:                 a.Role().String(),
		Name:                 a.Name(),
		Email:                a.Email().Value(),
		WhatsApp:             a.WhatsApp().Value(),
		PendingVerifications: pending,
		CreatedAt:            a.CreatedAt().String(),
		UpdatedAt:            a.UpdatedAt().String(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	req := esapi.IndexRequest{Index: ix.Index, DocumentID: a.ID().Value(), Body: bytes.NewReader(body), Refresh: "false"}
	res, err := req.Do(ctx, ix.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index account %s: %s", a.ID().Value(), res.Status())
	}
	return nil
}

// IndexedAccountRepository indexes accounts after a successful save.
// Index failures are logged and never fail the save.
type IndexedAccountRepository struct {
	repository.AccountRepository
	Indexer *AccountIndexer
}

var _ repository.AccountRepository = (*IndexedAccountRepository)(nil)

func NewIndexedAccountRepository(next repository.AccountRepository, indexer *AccountIndexer) *IndexedAccountRepository {
	return &IndexedAccountRepository{AccountRepository: next, Indexer: indexer}
}

func (r *IndexedAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if err := r.AccountRepository.Save(ctx, account); err != nil {
		return err
	}
	if err := r.Indexer.IndexAccount(ctx, account); err != nil && r.Indexer.Logger != nil {
		r.Indexer.Logger.WithError(err).WithField("account_id", account.ID().Value()).Warn("es index account failed")
	}
	return nil
}
