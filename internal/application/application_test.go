package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/mocks"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
	"github.com/oksasatya/six-cities-api/pkg/mailer"
)

type fixture struct {
	users    *mocks.UserRepo
	offers   *mocks.OfferRepo
	comments *mocks.CommentRepo
	index    *mocks.OfferIndex
	jobs     *mocks.Publisher

	userSvc    *application.UserService
	offerSvc   *application.OfferService
	commentSvc *application.CommentService
	authSvc    *application.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &fixture{
		users:    mocks.NewUserRepo(),
		offers:   mocks.NewOfferRepo(),
		comments: mocks.NewCommentRepo(),
		index:    mocks.NewOfferIndex(),
		jobs:     &mocks.Publisher{},
	}
	f.userSvc = application.NewUserService(f.users, f.jobs, logger, "six-cities")
	f.userSvc.BcryptCost = bcrypt.MinCost
	f.offerSvc = application.NewOfferService(f.offers, f.comments, f.users, f.index, logger)
	f.commentSvc = application.NewCommentService(f.comments, f.offers, logger)
	f.authSvc = application.NewAuthService(f.userSvc, helpers.NewTokenManager("test-secret", time.Hour), logger)
	return f
}

func (f *fixture) register(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := f.userSvc.Register(context.Background(), application.RegisterInput{
		Name: "Ann", Email: email, Password: "secret1", Type: entity.UserTypeNormal,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createOffer(t *testing.T, author primitive.ObjectID, title string) *entity.Offer {
	t.Helper()
	o, err := f.offerSvc.Create(context.Background(), author, application.CreateOfferInput{
		Title:       title,
		Description: "A bright and quiet place near everything.",
		City:        "Paris",
		Preview:     "preview.jpg",
		Images:      []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"},
		Type:        entity.HousingApartment,
		Bedrooms:    2,
		Guests:      3,
		Price:       120,
		Amenities:   []string{"Fridge"},
		Coordinates: entity.Coordinates{Latitude: 48.85661, Longitude: 2.351499},
	})
	require.NoError(t, err)
	return o
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, " Ann@Example.test ")

	assert.Equal(t, "ann@example.test", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.False(t, u.ID.IsZero())

	require.Len(t, f.jobs.Jobs, 1)
	job := f.jobs.Jobs[0].(mailer.EmailJob)
	assert.Equal(t, "ann@example.test", job.To)
	assert.Equal(t, "welcome", job.Template)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.test")

	_, err := f.userSvc.Register(context.Background(), application.RegisterInput{
		Name: "Ann2", Email: "ANN@example.test", Password: "secret1", Type: entity.UserTypePro,
	})
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestRegister_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.jobs.Err = errors.New("broker down")

	u := f.register(t, "ann@example.test")
	assert.NotNil(t, u)
}

func TestLoginAndTokens(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.test")
	ctx := context.Background()

	logged, err := f.authSvc.Login(ctx, "ann@example.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = f.authSvc.Login(ctx, "ann@example.test", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, err = f.authSvc.Login(ctx, "nobody@example.test", "secret1")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	tok, err := f.authSvc.CreateToken(u)
	require.NoError(t, err)
	payload := f.authSvc.VerifyToken(tok)
	require.NotNil(t, payload)
	assert.Equal(t, u.ID.Hex(), payload.ID)
	assert.Equal(t, u.Email, payload.Email)

	assert.Nil(t, f.authSvc.VerifyToken(""))
	assert.Nil(t, f.authSvc.VerifyToken("garbage"))
	assert.Nil(t, f.authSvc.VerifyToken(tok+"x"))

	expired := application.NewAuthService(f.userSvc, helpers.NewTokenManager("test-secret", -time.Second), logrus.New())
	old, err := expired.CreateToken(u)
	require.NoError(t, err)
	assert.Nil(t, f.authSvc.VerifyToken(old))
}

func TestCommentCreate_RecomputesStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.register(t, "ann@example.test")
	offer := f.createOffer(t, author.ID, "Sunny loft in the Marais")

	ratings := []int{5, 4, 4, 2, 5, 3, 1}
	sum := 0
	for i, r := range ratings {
		_, err := f.commentSvc.Create(ctx, application.CreateCommentInput{
			Text: "Lovely stay overall", Rating: r, AuthorID: author.ID, OfferID: offer.ID,
		})
		require.NoError(t, err)
		sum += r

		got, err := f.offerSvc.FindByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, got.CommentCount)
		assert.Equal(t, application.RoundRating(float64(sum)/float64(i+1)), got.Rating)
	}

	got, _ := f.offerSvc.FindByID(ctx, offer.ID)
	assert.Equal(t, 3.4, got.Rating)
}

func TestCommentCreate_StatsOnlyTouchTargetOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.register(t, "ann@example.test")
	a := f.createOffer(t, author.ID, "Sunny loft in the Marais")
	b := f.createOffer(t, author.ID, "Houseboat on the Seine")

	_, err := f.commentSvc.Create(ctx, application.CreateCommentInput{Text: "Great place to stay", Rating: 5, AuthorID: author.ID, OfferID: a.ID})
	require.NoError(t, err)

	other, _ := f.offerSvc.FindByID(ctx, b.ID)
	assert.Zero(t, other.CommentCount)
	assert.Zero(t, other.Rating)
}

func TestCommentCreate_StatsWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.register(t, "ann@example.test")
	offer := f.createOffer(t, author.ID, "Sunny loft in the Marais")
	f.offers.StatsErr = errors.New("write failed")

	_, err := f.commentSvc.Create(ctx, application.CreateCommentInput{Text: "Great place to stay", Rating: 5, AuthorID: author.ID, OfferID: offer.ID})
	require.Error(t, err)

	// the comment is persisted while the offer keeps stale stats
	n, _ := f.commentSvc.CountByOfferID(ctx, offer.ID)
	assert.Equal(t, 1, n)
	got, _ := f.offerSvc.FindByID(ctx, offer.ID)
	assert.Zero(t, got.CommentCount)

	// the next successful comment repairs them
	f.offers.StatsErr = nil
	_, err = f.commentSvc.Create(ctx, application.CreateCommentInput{Text: "Second visit, fine", Rating: 3, AuthorID: author.ID, OfferID: offer.ID})
	require.NoError(t, err)
	got, _ = f.offerSvc.FindByID(ctx, offer.ID)
	assert.Equal(t, 2, got.CommentCount)
	assert.Equal(t, 4.0, got.Rating)
}

func TestRoundRating(t *testing.T) {
	cases := map[float64]float64{
		0:          0,
		5:          5,
		4.25:       4.3,
		4.24:       4.2,
		10.0 / 3.0: 3.3,
		11.0 / 3.0: 3.7,
	}
	for in, want := range cases {
		assert.Equal(t, want, application.RoundRating(in), "round(%v)", in)
	}
}

func TestFindByOfferID_NewestFirstAndCapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.register(t, "ann@example.test")
	offer := f.createOffer(t, author.ID, "Sunny loft in the Marais")

	for i := 0; i < application.DefaultCommentCount+5; i++ {
		_, err := f.commentSvc.Create(ctx, application.CreateCommentInput{Text: "Comment text", Rating: 1 + i%5, AuthorID: author.ID, OfferID: offer.ID})
		require.NoError(t, err)
	}

	list, err := f.commentSvc.FindByOfferID(ctx, offer.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, application.DefaultCommentCount)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestFavorites_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "ann@example.test")
	offer := f.createOffer(t, u.ID, "Sunny loft in the Marais")

	require.NoError(t, f.userSvc.AddToFavorites(ctx, u.ID, offer.ID))
	require.NoError(t, f.userSvc.AddToFavorites(ctx, u.ID, offer.ID))
	favs, err := f.userSvc.GetFavoriteOffers(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{offer.ID}, favs)

	offers, err := f.offerSvc.FindFavorites(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, offer.ID, offers[0].ID)

	require.NoError(t, f.userSvc.RemoveFromFavorites(ctx, u.ID, offer.ID))
	require.NoError(t, f.userSvc.RemoveFromFavorites(ctx, u.ID, offer.ID))
	favs, err = f.userSvc.GetFavoriteOffers(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestOffer_UpdateAndDeleteRequireAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.test")
	stranger := f.register(t, "stranger@example.test")
	offer := f.createOffer(t, owner.ID, "Sunny loft in the Marais")

	price := 250
	_, err := f.offerSvc.Update(ctx, offer.ID, stranger.ID, entity.OfferUpdate{Price: &price})
	assert.ErrorIs(t, err, application.ErrNotOfferAuthor)
	assert.ErrorIs(t, f.offerSvc.Delete(ctx, offer.ID, stranger.ID), application.ErrNotOfferAuthor)

	updated, err := f.offerSvc.Update(ctx, offer.ID, owner.ID, entity.OfferUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Price)
	assert.Equal(t, offer.Title, updated.Title, "untouched fields are kept")
	assert.Equal(t, 250, f.index.Docs[offer.ID].Price, "index follows updates")
}

func TestOffer_DeleteCascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.test")
	offer := f.createOffer(t, owner.ID, "Sunny loft in the Marais")
	_, err := f.commentSvc.Create(ctx, application.CreateCommentInput{Text: "Great place to stay", Rating: 5, AuthorID: owner.ID, OfferID: offer.ID})
	require.NoError(t, err)

	require.NoError(t, f.offerSvc.Delete(ctx, offer.ID, owner.ID))

	_, err = f.offerSvc.FindByID(ctx, offer.ID)
	assert.ErrorIs(t, err, application.ErrOfferNotFound)
	n, _ := f.commentSvc.CountByOfferID(ctx, offer.ID)
	assert.Zero(t, n)
	assert.NotContains(t, f.index.Docs, offer.ID)
}

func TestOffer_Limits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.test")
	for i := 0; i < 5; i++ {
		o := f.createOffer(t, owner.ID, "Premium flat number one")
		premium := true
		_, err := f.offerSvc.Update(ctx, o.ID, owner.ID, entity.OfferUpdate{IsPremium: &premium})
		require.NoError(t, err)
	}

	premium, err := f.offerSvc.FindPremiumByCity(ctx, "Paris", 0)
	require.NoError(t, err)
	assert.Len(t, premium, application.DefaultPremiumCount)

	none, err := f.offerSvc.FindPremiumByCity(ctx, "Hamburg", 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	two, err := f.offerSvc.FindMany(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestOffer_SearchSkipsStaleHits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.test")
	canal := f.createOffer(t, owner.ID, "Canal house with a view")
	f.createOffer(t, owner.ID, "Sunny loft in the Marais")
	f.index.Extra = []primitive.ObjectID{primitive.NewObjectID()}

	found, err := f.offerSvc.Search(ctx, "canal", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, canal.ID, found[0].ID)

	empty, err := f.offerSvc.Search(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExists_MalformedID(t *testing.T) {
	f := newFixture(t)
	ok, err := f.offerSvc.Exists(context.Background(), "not-hex")
	require.NoError(t, err)
	assert.False(t, ok)

	u := f.register(t, "ann@example.test")
	ok, err = f.userSvc.Exists(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)
}
