package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/config"
	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

type demoOffer struct {
	title  string
	city   string
	typ    entity.HousingType
	price  int
	lat    float64
	lng    float64
	premium bool
}

var demoOffers = []demoOffer{
	{"Canal view studio in the old town", "Amsterdam", entity.HousingApartment, 180, 52.370216, 4.895168, true},
	{"Quiet room near the cathedral", "Cologne", entity.HousingRoom, 120, 50.938361, 6.959974, false},
	{"Family house with a garden", "Brussels", entity.HousingHouse, 350, 50.846557, 4.351697, true},
	{"Loft by the harbour", "Hamburg", entity.HousingApartment, 240, 53.550341, 10.000654, false},
	{"Boutique hotel off the Rue de Rivoli", "Paris", entity.HousingHotel, 410, 48.85661, 2.351499, true},
	{"Bright flat by the Rhine promenade", "Dusseldorf", entity.HousingApartment, 160, 51.225402, 6.776314, false},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI(), cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := mongodb.RunMigrations(client, cfg.MongoDB, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	db := client.Database(cfg.MongoDB)
	users := mongodb.NewUserRepository(db)
	offers := mongodb.NewOfferRepository(db)
	comments := mongodb.NewCommentRepository(db)

	userSvc := application.NewUserService(users, nil, logger, cfg.AppName)
	offerSvc := application.NewOfferService(offers, comments, users, nil, logger)

	email := "demo@six-cities.test"
	password := "demo123"
	host, err := userSvc.Register(ctx, application.RegisterInput{
		Name: "demoHost", Email: email, Password: password, Type: entity.UserTypePro,
	})
	if errors.Is(err, application.ErrEmailTaken) {
		host, err = userSvc.FindByEmail(ctx, email)
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", host.ID.Hex(), email, password)

	for _, d := range demoOffers {
		o, err := offerSvc.Create(ctx, host.ID, application.CreateOfferInput{
			Title:       d.title,
			Description: "A comfortable stay in the heart of " + d.city + ", close to everything.",
			City:        d.city,
			Preview:     "https://picsum.photos/seed/" + d.city + "/260/200",
			Images:      demoImages(d.city),
			IsPremium:   d.premium,
			Type:        d.typ,
			Bedrooms:    2,
			Guests:      4,
			Price:       d.price,
			Amenities:   []string{"Breakfast", "Air conditioning", "Fridge"},
			Coordinates: entity.Coordinates{Latitude: d.lat, Longitude: d.lng},
		})
		if err != nil {
			log.Fatalf("failed to seed offer %q: %v", d.title, err)
		}
		logger.WithFields(logrus.Fields{"offer_id": o.ID.Hex(), "city": d.city}).Info("seeded offer")
	}
}

func demoImages(seed string) []string {
	out := make([]string, 6)
	for i := range out {
		out[i] = fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", seed, i+1)
	}
	return out
}
