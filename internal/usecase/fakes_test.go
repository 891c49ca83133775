package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// In-memory implementations of the repository and service contracts.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	// ShouldFailCreate makes CreateUser return a storage error.
	ShouldFailCreate bool
	ShouldFailSetTok bool
	// ShouldFailConsume makes ConsumeVerificationToken fail before any write.
	ShouldFailConsume bool
	// ShouldFailUpdateState makes UpdateVerificationState return a storage error.
	ShouldFailUpdateState bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.Student != nil {
		s := *u.Student
		c.Student = &s
	}
	if u.Business != nil {
		b := *u.Business
		c.Business = &b
	}
	if u.VerificationTokenExpires != nil {
		t := *u.VerificationTokenExpires
		c.VerificationTokenExpires = &t
	}
	return &c
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailCreate {
		return errors.New("mongo down")
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return entity.ErrDuplicateIdentity
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) GetUserByStudentID(_ context.Context, studentID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Student != nil && u.Student.StudentID == studentID {
			return cloneUser(u), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) SetVerificationToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailSetTok {
		return errors.New("mongo down")
	}
	u, ok := r.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	u.SetVerificationToken(tokenHash, expires)
	return nil
}

func (r *fakeUserRepo) ConsumeVerificationToken(_ context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailConsume {
		return nil, errors.New("mongo down")
	}
	// Same single-write transition as the pipeline update in the mongo repository.
	for _, u := range r.users {
		if u.VerificationToken == tokenHash && u.VerificationTokenExpires != nil && u.VerificationTokenExpires.After(now) {
			u.ConfirmEmail(now)
			return cloneUser(u), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) UpdateVerificationState(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailUpdateState {
		return errors.New("mongo down")
	}
	u, ok := r.users[user.ID]
	if !ok {
		return entity.ErrNotFound
	}
	u.EmailVerified = user.EmailVerified
	u.AccountVerified = user.AccountVerified
	u.VerificationStatus = user.VerificationStatus
	u.RejectionReason = user.RejectionReason
	u.VerifiedBy = user.VerifiedBy
	u.VerifiedAt = user.VerifiedAt
	u.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *fakeUserRepo) UpdateUserRole(_ context.Context, id string, role entity.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) match(u *entity.User, opts *contract.UserFilterOptions) bool {
	if opts == nil {
		return true
	}
	if opts.Kind != nil && u.Kind != *opts.Kind {
		return false
	}
	if opts.VerificationStatus != nil && u.VerificationStatus != *opts.VerificationStatus {
		return false
	}
	if opts.EmailVerified != nil && u.EmailVerified != *opts.EmailVerified {
		return false
	}
	return true
}

func (r *fakeUserRepo) ListUsers(_ context.Context, opts *contract.UserFilterOptions) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if r.match(u, opts) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountUsers(ctx context.Context, opts *contract.UserFilterOptions) (int64, error) {
	_, n, err := r.ListUsers(ctx, opts)
	return n, err
}

type fakePlaceRepo struct {
	mu     sync.Mutex
	places map[string]*entity.Place
	writes int
	// ShouldFailAggregates makes UpdateAggregates fail.
	ShouldFailAggregates bool
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[string]*entity.Place{}}
}

func (r *fakePlaceRepo) CreatePlace(_ context.Context, place *entity.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *place
	r.places[place.ID] = &c
	return nil
}

func (r *fakePlaceRepo) GetPlaceByID(_ context.Context, id string) (*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakePlaceRepo) ListPlaces(_ context.Context, opts *contract.PlaceFilterOptions) ([]*entity.Place, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Place
	for _, p := range r.places {
		if !p.IsActive {
			continue
		}
		if opts.Category != nil && p.Category != *opts.Category {
			continue
		}
		if opts.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Query)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (r *fakePlaceRepo) UpdatePlace(_ context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return entity.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "category":
			p.Category = v.(entity.PlaceCategory)
		case "tags":
			p.Tags = v.([]string)
		case "ratings", "review_count":
			return fmt.Errorf("aggregate field %s is not writable", k)
		}
	}
	return nil
}

func (r *fakePlaceRepo) DeletePlace(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakePlaceRepo) UpdateAggregates(_ context.Context, id string, agg entity.PlaceAggregates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailAggregates {
		return errors.New("write conflict")
	}
	p, ok := r.places[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.Ratings = agg.Ratings
	p.ReviewCount = agg.ReviewCount
	r.writes++
	return nil
}

func (r *fakePlaceRepo) CountPlaces(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.places)), nil
}

// fakeReviewRepo joins reviewer kinds from the user repo, like the $lookup
// pipeline does.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
	users   *fakeUserRepo
	// ShouldFailList makes ListVisibleRatings fail.
	ShouldFailList bool
}

func newFakeReviewRepo(users *fakeUserRepo) *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*entity.Review{}, users: users}
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.PlaceID == review.PlaceID && rv.UserID == review.UserID {
			return entity.ErrDuplicateReview
		}
	}
	c := *review
	r.reviews[review.ID] = &c
	return nil
}

func (r *fakeReviewRepo) GetReviewByID(_ context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	c := *rv
	return &c, nil
}

func (r *fakeReviewRepo) HasReview(_ context.Context, placeID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.PlaceID == placeID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) DeleteReview(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListVisibleRatings(ctx context.Context, placeID string) ([]entity.RatingSample, error) {
	r.mu.Lock()
	if r.ShouldFailList {
		r.mu.Unlock()
		return nil, errors.New("cursor error")
	}
	var visible []entity.Review
	for _, rv := range r.reviews {
		if rv.PlaceID == placeID && !rv.IsHidden {
			visible = append(visible, *rv)
		}
	}
	r.mu.Unlock()

	samples := make([]entity.RatingSample, 0, len(visible))
	for _, rv := range visible {
		u, err := r.users.GetUserByID(ctx, rv.UserID)
		if err != nil {
			continue
		}
		samples = append(samples, entity.RatingSample{Rating: rv.Rating, ReviewerKind: u.Kind})
	}
	return samples, nil
}

func (r *fakeReviewRepo) list(match func(*entity.Review) bool) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.reviews {
		if match(rv) {
			c := *rv
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) ListReviewsByPlace(_ context.Context, placeID string, _ contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(func(rv *entity.Review) bool { return rv.PlaceID == placeID && !rv.IsHidden })
}

func (r *fakeReviewRepo) ListReviewsByUser(_ context.Context, userID string, _ contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(func(rv *entity.Review) bool { return rv.UserID == userID })
}

func (r *fakeReviewRepo) ListFlaggedReviews(_ context.Context, _ contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(func(rv *entity.Review) bool { return rv.IsFlagged })
}

func (r *fakeReviewRepo) UpdateModeration(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return entity.ErrNotFound
	}
	c := *review
	r.reviews[review.ID] = &c
	return nil
}

func (r *fakeReviewRepo) FlagReview(_ context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return entity.ErrNotFound
	}
	rv.IsFlagged = true
	rv.FlagReason = reason
	return nil
}

func (r *fakeReviewRepo) CountReviews(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.reviews)), nil
}

type sentNotification struct {
	To   string
	Kind contract.NotificationKind
	Data map[string]any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	// ShouldFail makes every Send fail.
	ShouldFail bool
}

func (n *fakeNotifier) Send(_ context.Context, to string, kind contract.NotificationKind, data map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ShouldFail {
		return errors.New("smtp unavailable")
	}
	n.sent = append(n.sent, sentNotification{To: to, Kind: kind, Data: data})
	return nil
}

func (n *fakeNotifier) last(kind contract.NotificationKind) (sentNotification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].Kind == kind {
			return n.sent[i], true
		}
	}
	return sentNotification{}, false
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) ComparePasswordHash(password, hashed string) error {
	if hashed != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakeHasher) HashString(s string) string { return "sha:" + s }

func (fakeHasher) CheckHash(s, hash string) bool { return hash == "sha:"+s }

type fakeRandom struct {
	mu sync.Mutex
	n  int
}

func (g *fakeRandom) GenerateRandomToken(int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("token-%d", g.n), nil
}

type fakeUUID struct {
	mu sync.Mutex
	n  int
}

func (g *fakeUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

type fakeLogger struct{}

func (fakeLogger) Debugf(string, ...interface{}) {}
func (fakeLogger) Infof(string, ...interface{})  {}
func (fakeLogger) Warnf(string, ...interface{})  {}
func (fakeLogger) Errorf(string, ...interface{}) {}
func (fakeLogger) Fatalf(string, ...interface{}) {}

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string                          { return "http://localhost:8080" }
func (fakeConfig) GetAccessTokenExpiry() time.Duration            { return 15 * time.Minute }
func (fakeConfig) GetEmailVerificationTokenExpiry() time.Duration { return 24 * time.Hour }
func (fakeConfig) GetStudentEmailDomain() string                  { return "university.edu" }
func (fakeConfig) GetAdminNotificationEmail() string              { return "admin@university.edu" }

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

func (fakeValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

func (fakeValidator) ValidateInstitutionalEmail(email, domain string) error {
	if !strings.HasSuffix(email, "@"+domain) {
		return errors.New("not institutional")
	}
	return nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole, kind entity.AccountKind) (string, error) {
	return strings.Join([]string{"jwt", userID, string(role), string(kind)}, "|"), nil
}

func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "jwt" {
		return nil, errors.New("bad token")
	}
	return &entity.Claims{UserID: parts[1], Role: entity.UserRole(parts[2]), Kind: entity.AccountKind(parts[3])}, nil
}

type fakePlaceCache struct {
	mu          sync.Mutex
	places      map[string]*entity.Place
	invalidated []string
}

func newFakePlaceCache() *fakePlaceCache {
	return &fakePlaceCache{places: map[string]*entity.Place{}}
}

func (c *fakePlaceCache) GetPlace(_ context.Context, id string) (*entity.Place, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.places[id]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (c *fakePlaceCache) SetPlace(_ context.Context, place *entity.Place) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *place
	c.places[place.ID] = &cp
	return nil
}

func (c *fakePlaceCache) InvalidatePlace(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.places, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type countingMetrics struct {
	nopMetrics
	mu               sync.Mutex
	recomputeFailed  int
	notificationFail int
	reviewsCreated   int
}

func (m *countingMetrics) RecomputeFailed() {
	m.mu.Lock()
	m.recomputeFailed++
	m.mu.Unlock()
}

func (m *countingMetrics) NotificationFailed(contract.NotificationKind) {
	m.mu.Lock()
	m.notificationFail++
	m.mu.Unlock()
}

func (m *countingMetrics) ReviewCreated() {
	m.mu.Lock()
	m.reviewsCreated++
	m.mu.Unlock()
}

// env wires every usecase over the same in-memory stores.
type env struct {
	users      *fakeUserRepo
	places     *fakePlaceRepo
	reviews    *fakeReviewRepo
	notifier   *fakeNotifier
	random     *fakeRandom
	metrics    *countingMetrics
	cache      *fakePlaceCache
	clock      time.Time
	email      *EmailVerificationUseCase
	user       *UserUsecase
	admin      *AdminUseCase
	aggregator *RatingAggregator
	review     *ReviewUseCase
	place      *PlaceUseCase
}

func newEnv() *env {
	e := &env{
		users:    newFakeUserRepo(),
		places:   newFakePlaceRepo(),
		notifier: &fakeNotifier{},
		random:   &fakeRandom{},
		metrics:  &countingMetrics{},
		cache:    newFakePlaceCache(),
		clock:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	e.reviews = newFakeReviewRepo(e.users)
	ids := &fakeUUID{}
	now := func() time.Time { return e.clock }

	e.email = NewEmailVerificationUseCase(e.users, e.notifier, fakeHasher{}, e.random, fakeLogger{}, fakeConfig{}, e.metrics)
	e.email.now = now
	e.user = NewUserUsecase(e.users, e.email, fakeHasher{}, fakeJWT{}, e.notifier, fakeLogger{}, fakeConfig{}, fakeValidator{}, ids, e.metrics)
	e.user.now = now
	e.admin = NewAdminUseCase(e.users, e.places, e.reviews, e.notifier, fakeLogger{}, e.metrics)
	e.admin.now = now
	e.aggregator = NewRatingAggregator(e.reviews, e.places, fakeLogger{})
	e.aggregator.SetPlaceCache(e.cache)
	e.review = NewReviewUseCase(e.reviews, e.places, e.aggregator, ids, fakeLogger{}, e.metrics)
	e.review.now = now
	e.place = NewPlaceUseCase(e.places, e.users, ids, fakeLogger{})
	e.place.now = now
	e.place.SetPlaceCache(e.cache)
	return e
}

// seedUser stores a confirmed user of the given kind directly.
func (e *env) seedUser(id string, kind entity.AccountKind) *entity.User {
	u := &entity.User{
		ID:                 id,
		Email:              id + "@example.com",
		PasswordHash:       "hashed:Password1!",
		Kind:               kind,
		Role:               entity.DefaultRole(kind),
		EmailVerified:      true,
		AccountVerified:    true,
		VerificationStatus: entity.VerificationApproved,
	}
	e.users.users[id] = u
	return u
}

func (e *env) seedPlace(id string) *entity.Place {
	p := &entity.Place{
		ID:       id,
		Name:     "Place " + id,
		Category: entity.PlaceCategoryCafe,
		Location: entity.NewGeoPoint(77.59, 12.97),
		OwnerID:  "owner",
		IsActive: true,
	}
	e.places.places[id] = p
	return p
}

func callerOf(u *entity.User) entity.Caller {
	return entity.Caller{UserID: u.ID, Role: u.Role, Kind: u.Kind}
}

var adminCaller = entity.Caller{UserID: "admin-1", Role: entity.UserRoleAdmin, Kind: entity.AccountKindAdmin}
