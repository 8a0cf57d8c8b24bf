// Package profile assembles the account summary: identity plus per-kind
// record counts.
package profile

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

const MsgUserNotFound = "User not found"

// Counts holds the number of records of each kind.
type Counts struct {
	Lend     int64 `json:"lend"`
	Spent    int64 `json:"spent"`
	Borrowed int64 `json:"borrowed"`
	Deposit  int64 `json:"deposit"`
}

type Profile struct {
	User    domain.PublicUser `json:"user"`
	Records Counts            `json:"records"`
}

// Source is what the aggregator reads from.
type Source interface {
	UserByID(ctx context.Context, id int64) (domain.User, error)
	CountRecords(ctx context.Context, userID int64, kind domain.Kind) (int64, error)
}

type Aggregator struct {
	src Source
}

func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// Get loads the user and runs the four counts concurrently.
func (a *Aggregator) Get(ctx context.Context, userID int64) (Profile, error) {
	u, err := a.src.UserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return Profile{}, apperr.New(apperr.CodeUserNotFound, MsgUserNotFound)
	}
	if err != nil {
		return Profile{}, apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}

	var counts Counts
	targets := map[domain.Kind]*int64{
		domain.KindLend:    &counts.Lend,
		domain.KindSpend:   &counts.Spent,
		domain.KindBorrow:  &counts.Borrowed,
		domain.KindDeposit: &counts.Deposit,
	}
	g, gctx := errgroup.WithContext(ctx)
	for kind, dst := range targets {
		kind, dst := kind, dst
		g.Go(func() error {
			n, err := a.src.CountRecords(gctx, userID, kind)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Profile{}, apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}

	return Profile{User: u.Public(), Records: counts}, nil
}
