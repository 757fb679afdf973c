//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"hotel/transport/worker"

	"github.com/google/wire"

	authService "hotel/internal/domains/auth/service"
	availabilityRepository "hotel/internal/domains/availability/repository"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	invoiceRepository "hotel/internal/domains/invoice/repository"
	invoiceService "hotel/internal/domains/invoice/service"
	orderRepository "hotel/internal/domains/order/repository"
	orderService "hotel/internal/domains/order/service"
	pricingService "hotel/internal/domains/pricing/service"
	reportRepository "hotel/internal/domains/report/repository"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	roomTypeService "hotel/internal/domains/roomtype/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	guestHandler "hotel/internal/handlers/guest"
	invoiceHandler "hotel/internal/handlers/invoice"
	orderHandler "hotel/internal/handlers/order"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
	roomTypeHandler "hotel/internal/handlers/roomtype"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var inventoryDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewStatusLog,
	roomService.New,
	roomTypeRepository.New,
	roomTypeRepository.NewPrice,
	roomTypeService.New,
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
	pricingService.New,
	event.NewPublisher,
	bookingRepository.NewRepositories,
	bookingService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.NewRepositories,
	invoiceService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.NewRepositories,
	orderService.New,
)

var reportDomain = wire.NewSet(
	wire.FieldsOf(new(bookingRepository.Repositories), "Guest"),
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	userDomain,
	inventoryDomain,
	bookingDomain,
	invoiceDomain,
	orderDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	roomTypeHandler.New,
	guestHandler.New,
	bookingHandler.New,
	invoiceHandler.New,
	orderHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *worker.Consumer {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		bookingDomain,
		reportDomain,
		roomRepository.New,
		worker.NewConsumer,
	)

	return &worker.Consumer{}
}

func InitializeSweeper() *worker.Sweeper {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		bookingDomain,
		guestRepository.New,
		roomRepository.New,
		roomRepository.NewStatusLog,
		roomTypeRepository.New,
		roomTypeRepository.NewPrice,
		worker.NewSweeper,
	)

	return &worker.Sweeper{}
}
