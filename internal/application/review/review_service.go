package review

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/application/state"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SubmitReviewRequest is the review form
type SubmitReviewRequest struct {
	UserName string `json:"userName" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ReviewsResponse lists a product's reviews with the computed average
type ReviewsResponse struct {
	ProductID     string          `json:"productId"`
	Reviews       []review.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"averageRating"`
}

// ReviewService handles product reviews
type ReviewService struct {
	store   *state.Container[review.Book]
	catalog catalog.Reader
	newID   review.IDGenerator
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a ReviewService
type Option func(*ReviewService)

// WithIDGenerator overrides review and reviewer id generation
func WithIDGenerator(gen review.IDGenerator) Option {
	return func(s *ReviewService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the clock used for default review dates
func WithClock(now func() time.Time) Option {
	return func(s *ReviewService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewReviewService creates a new ReviewService. Until something is
// persisted the book holds the reviews embedded in the catalog.
func NewReviewService(storage shared.StateStorage, reader catalog.Reader, logger *zap.Logger, opts ...Option) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReviewService{
		store:   state.New(storage, shared.NamespaceReviews, SeedFromCatalog(reader), state.WithLogger(logger)),
		catalog: reader,
		newID:   review.NewID,
		now:     time.Now,
		logger:  logger.Named("review"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedFromCatalog builds the initial review book from product seed reviews
func SeedFromCatalog(reader catalog.Reader) review.Book {
	book := review.Book{}
	for _, p := range reader.List() {
		if len(p.Reviews) == 0 {
			continue
		}
		list := make([]review.Review, len(p.Reviews))
		copy(list, p.Reviews)
		book[p.ID] = list
	}
	return book
}

// Load rehydrates the review book from storage
func (s *ReviewService) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Submit validates and appends a review for productID
func (s *ReviewService) Submit(ctx context.Context, productID string, req SubmitReviewRequest) (*review.Review, error) {
	if _, ok := s.catalog.GetProduct(productID); !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = s.now().Format(review.DateLayout)
	}

	var added review.Review
	_, err := s.store.Update(ctx, func(b review.Book) (review.Book, bool, error) {
		next, r := b.Add(productID, review.Draft{
			UserName: req.UserName,
			Rating:   req.Rating,
			Comment:  req.Comment,
			Date:     date,
		}, s.newID)
		added = r
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("review added",
		zap.String("product_id", productID),
		zap.String("review_id", added.ID),
		zap.Int("rating", added.Rating))
	return &added, nil
}

// Get returns a product's reviews in insertion order with their average
func (s *ReviewService) Get(productID string) *ReviewsResponse {
	reviews := s.store.Get().Get(productID)
	return &ReviewsResponse{
		ProductID:     productID,
		Reviews:       reviews,
		Count:         len(reviews),
		AverageRating: review.AverageRating(reviews),
	}
}

// AverageRating recomputes the mean rating for productID
func (s *ReviewService) AverageRating(productID string) float64 {
	return review.AverageRating(s.store.Get().Get(productID))
}
