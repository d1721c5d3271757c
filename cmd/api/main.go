package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	//.envは無ければ無視（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.MenuItem{},
		&model.CartSession{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	sessionRepo := infraRepo.NewCartSessionGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo)
	cartUC := usecase.NewCartUsecase(sessionRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartUC, orderRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Restaurant: handler.NewRestaurantHandler(restaurantUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
	}

	//Server起動
	if err := server.Start(cfg, log, handlers); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
