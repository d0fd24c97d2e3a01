package application

import (
	"context"
	"sync"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	notification "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx satisfies pgx.Tx without a database; it only tracks the
// commit/rollback discipline of the use cases.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeDB struct {
	lastTx *fakeTx
}

func (db *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	db.lastTx = &fakeTx{}
	return db.lastTx, nil
}

// fakeAuctionRepo keeps auctions in a map. GetForUpdate hands out a copy so
// state only persists through the explicit Update/Mark calls, mirroring how
// the real repository behaves.
type fakeAuctionRepo struct {
	mu       sync.Mutex
	auctions map[uuid.UUID]*domain.Auction
	deleted  []uuid.UUID
}

func newFakeAuctionRepo(auctions ...*domain.Auction) *fakeAuctionRepo {
	r := &fakeAuctionRepo{auctions: make(map[uuid.UUID]*domain.Auction)}
	for _, a := range auctions {
		r.auctions[a.ID] = a
	}
	return r
}

func (r *fakeAuctionRepo) get(id uuid.UUID) (*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAuctionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	return r.get(id)
}

func (r *fakeAuctionRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Auction, error) {
	return r.get(id)
}

func (r *fakeAuctionRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.auctions[a.ID] = &cp
	return nil
}

func (r *fakeAuctionRepo) UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, newPrice float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[id].CurrentPrice = newPrice
	return nil
}

func (r *fakeAuctionRepo) MarkEnded(ctx context.Context, tx pgx.Tx, id uuid.UUID, finalPrice float64, winnerID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.auctions[id]
	a.CurrentPrice = finalPrice
	a.Status = domain.StatusEnded
	a.WinnerID = winnerID
	return nil
}

func (r *fakeAuctionRepo) MarkCancelled(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[id].Status = domain.StatusCancelled
	return nil
}

func (r *fakeAuctionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.auctions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAuctionRepo) ListActive(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Auction
	for _, a := range r.auctions {
		if a.Status == domain.StatusActive && now.Before(a.EndTime) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAuctionRepo) ListDue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, a := range r.auctions {
		if a.Status == domain.StatusActive && !now.Before(a.EndTime) {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

type fakeBidRepo struct {
	mu   sync.Mutex
	bids []*domain.Bid
}

func (r *fakeBidRepo) Insert(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *bid
	r.bids = append(r.bids, &cp)
	return nil
}

func (r *fakeBidRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Bid
	for _, b := range r.bids {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) GetLeading(ctx context.Context, auctionID uuid.UUID) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var leading *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if leading == nil || b.Amount > leading.Amount {
			leading = b
		}
	}
	return leading, nil
}

func (r *fakeBidRepo) GetUserHighest(ctx context.Context, auctionID, userID uuid.UUID) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var highest *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID || b.UserID != userID {
			continue
		}
		if highest == nil || b.Amount > highest.Amount {
			highest = b
		}
	}
	return highest, nil
}

type sentNotification struct {
	UserID  uuid.UUID
	Type    notification.Type
	Message string
	Link    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, t notification.Type, message, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{UserID: userID, Type: t, Message: message, Link: link})
	return nil
}

func (n *fakeNotifier) sentTo(userID uuid.UUID, t notification.Type) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.sent {
		if s.UserID == userID && s.Type == t {
			return true
		}
	}
	return false
}

type fakePublisher struct {
	mu        sync.Mutex
	published []uuid.UUID
}

func (p *fakePublisher) PublishAuctionUpdate(auctionID uuid.UUID, state *AuctionStateDTO) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, auctionID)
}

// activeAuction builds an ACTIVE auction ending an hour from now.
func activeAuction(sellerID uuid.UUID, startingPrice float64, buyNowPrice *float64) *domain.Auction {
	now := time.Now().UTC()
	return &domain.Auction{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Title:         "Dorm mini fridge",
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		BuyNowPrice:   buyNowPrice,
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(time.Hour),
		Status:        domain.StatusActive,
	}
}
