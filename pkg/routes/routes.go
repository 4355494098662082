package pkg

import (
	"context"
	"log"

	"MedicineReminder/internal/auth"
	"MedicineReminder/internal/config"
	"MedicineReminder/internal/medicine"
	"MedicineReminder/internal/reminder"
	"MedicineReminder/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var AppModules = fx.Module("app",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewEmailSender),
	fx.Provide(config.NewDeepseekConfig),
	fx.Provide(config.NewDeepseekService),
	fx.Provide(func(s *config.DeepseekService) config.Completer { return s }),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(medicine.NewMedicineRepository),
	fx.Provide(medicine.NewMedicineService),
	fx.Provide(medicine.NewMedicineHandler),
	fx.Provide(func(r *medicine.MedicineRepository) reminder.EligibleFinder { return r }),
	fx.Provide(reminder.NewContentGenerator),
	fx.Provide(reminder.NewRecipientGrouper),
	fx.Provide(reminder.NewDispatcher),
	fx.Provide(reminder.NewReminderService),
	fx.Provide(reminder.NewReminderHandler),
	fx.Provide(reminder.NewReminderScheduler),
	fx.Invoke(EnsureIndexes),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(func(s *reminder.ReminderScheduler, lc fx.Lifecycle) { s.StartScheduler(lc) }),
)

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	middleware.SetupMiddleware(e)
	port := ":8080"
	log.Println("Server running on http://localhost" + port[1:])
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(port); err != nil {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func EnsureIndexes(db *mongo.Database) {
	config.UserActiveIndex(db.Collection("medicines"))
	config.UniqueEmailIndex(db.Collection("users"))
}

func RegisterRoutes(e *echo.Echo, authHandler *auth.AuthHandler, medicineHandler *medicine.MedicineHandler, reminderHandler *reminder.ReminderHandler) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Cron trigger is authorized by CRON_SECRET, not by a user token.
	e.POST("/api/cron/daily-reminders", reminderHandler.TriggerDailyReminders)

	protected := e.Group("/api")
	protected.Use(middleware.JWTMiddleware)
	protected.GET("/profile", authHandler.Profile)
	protected.GET("/medicines/:userId", medicineHandler.ListMedicines)
	protected.GET("/medicines/:userId/adherence", medicineHandler.Adherence)
	protected.POST("/medicines", medicineHandler.AddMedicine)
	protected.PATCH("/medicines/:id", medicineHandler.UpdateMedicine)
	protected.DELETE("/medicines/:id", medicineHandler.DeleteMedicine)
}
