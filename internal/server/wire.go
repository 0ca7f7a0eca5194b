package server

import (
	"time"

	"foodorder/internal/config"
	"foodorder/internal/handler"
	infraRepo "foodorder/internal/infra/repository"
	"foodorder/internal/infra/token"
	"foodorder/internal/usecase"
	auth "foodorder/internal/usecase/auth_usecase"
	"foodorder/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Repository → Usecase → Handler の組み立て
// guardはnilなら重複チェックなし
func Build(cfg config.Config, log zerolog.Logger, db *gorm.DB, events usecase.OrderEventPublisher, guard usecase.CheckoutGuard) *echo.Echo {
	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(db)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(db)
	dishRepo := infraRepo.NewDishGormRepository(db)
	cartRepo := infraRepo.NewCartGormRepository(db)
	cartItemRepo := infraRepo.NewCartItemGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(db)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(db)
	txm := infraRepo.NewTxManagerGorm(db)

	//auth
	clock := realClock{}
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authValidator := validator.NewAuthValidator(userRepo)
	registerUC := auth.NewRegisterUserUsecase(userRepo, authValidator, auth.NewBcryptPasswordHasher(cfg.BcryptCost), issuer, clock)
	loginUC := auth.NewLoginUsecase(userRepo, authValidator, auth.NewBcryptPasswordVerifier(), issuer, clock)
	meUC := auth.NewMeUsecase(userRepo)

	//Usecase生成
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo, dishRepo)
	dishUC := usecase.NewDishUsecase(txm, dishRepo)
	cartUC := usecase.NewCartUsecase(txm, cartRepo, cartItemRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, auditLogRepo, events, guard)
	sellerUC := usecase.NewSellerOrderUsecase(txm, orderRepo, events)
	paymentUC := usecase.NewPaymentUsecase(txm, events)

	//Handler生成
	h := Handlers{
		Auth:        handler.NewAuthHandler(registerUC, loginUC, meUC),
		Restaurants: handler.NewRestaurantHandler(restaurantUC),
		Dishes:      handler.NewDishHandler(dishUC),
		Cart:        handler.NewCartHandler(cartUC),
		Orders:      handler.NewOrderHandler(orderUC, sellerUC, paymentUC),
		Payments:    handler.NewPaymentHandler(paymentUC),
	}

	return New(cfg, log, userRepo, h)
}
