package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"storeroom/internal/alerts"
	"storeroom/internal/handler"
	"storeroom/internal/middleware"
	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/internal/service"
	"storeroom/internal/ws"
	"storeroom/pkg/config"
	"storeroom/pkg/database"
	"storeroom/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Setup database
	db := database.Connect(cfg)
	db.AutoMigrate(&model.Item{}, &model.Movement{}, &model.User{}, &model.Capability{}, &model.Role{}, &model.Category{})

	// 3. Seed fixed roles, capabilities, categories, and staff accounts
	seedDefaults(db, cfg)

	// 4. Websocket hub for live stock updates
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Wiring
	itemRepo := repository.NewItemRepo(db)
	movementRepo := repository.NewMovementRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	uow := repository.NewUnitOfWork(db)

	tokens := jwt.NewManager(cfg.JWTSecret)
	notifier := alerts.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)

	invService := service.NewInventoryService(itemRepo, uow, wsHub)
	purchaseService := service.NewPurchaseService(itemRepo, uow, wsHub)
	var kitchenNotifier alerts.Notifier
	if notifier != nil {
		kitchenNotifier = notifier
	}
	kitchenService := service.NewKitchenService(uow, wsHub, kitchenNotifier, cfg.LowStockPercent)
	authService := service.NewAuthService(userRepo, tokens)
	dashService := service.NewDashboardService(itemRepo, movementRepo, cfg.LowStockPercent)
	categoryService := service.NewCategoryService(categoryRepo, itemRepo)

	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(invService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	kitchenHandler := handler.NewKitchenHandler(kitchenService)
	ledgerHandler := handler.NewLedgerHandler(movementRepo, cfg.LedgerRetentionDays)
	dashHandler := handler.NewDashboardHandler(dashService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// 6. Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Storeroom v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Everything below requires a valid session
	protected := api.Group("", middleware.RequireAuth(userRepo, tokens))

	// Item store (managers mutate, everyone views)
	protected.Get("/items", middleware.RequireCapability(model.CapItemView), itemHandler.GetItems)
	protected.Get("/items/:id", middleware.RequireCapability(model.CapItemView), itemHandler.GetItem)
	protected.Post("/items", middleware.RequireCapability(model.CapItemCreate), itemHandler.CreateItem)
	protected.Put("/items/:id", middleware.RequireCapability(model.CapItemUpdate), itemHandler.UpdateItem)
	protected.Delete("/items/:id", middleware.RequireCapability(model.CapItemDelete), itemHandler.DeleteItem)

	// Purchase intake
	protected.Post("/purchases", middleware.RequireCapability(model.CapPurchaseRecord), purchaseHandler.RecordPurchase)
	protected.Post("/purchases/preview", middleware.RequireCapability(model.CapPurchaseBulk), purchaseHandler.Preview)
	protected.Post("/purchases/bulk", middleware.RequireCapability(model.CapPurchaseBulk), purchaseHandler.BulkRecord)

	// Kitchen transfer
	protected.Post("/kitchen/transfers", middleware.RequireCapability(model.CapKitchenIssue), kitchenHandler.Transfer)

	// Movement ledger
	protected.Get("/movements", middleware.RequireCapability(model.CapLedgerView), ledgerHandler.GetMovements)
	protected.Get("/movements/export", middleware.RequireCapability(model.CapLedgerView), ledgerHandler.Export)

	// Dashboard
	protected.Get("/dashboard/summary", middleware.RequireCapability(model.CapDashboardView), dashHandler.GetSummary)
	protected.Get("/dashboard/stats", middleware.RequireCapability(model.CapDashboardView), dashHandler.GetStats)
	protected.Get("/dashboard/stock-movement", middleware.RequireCapability(model.CapDashboardView), dashHandler.GetStockFlow)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", middleware.RequireCapability(model.CapCategoryManage), categoryHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequireCapability(model.CapCategoryManage), categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequireCapability(model.CapCategoryManage), categoryHandler.DeleteCategory)

	// Roles (introspection for the frontend)
	protected.Get("/roles", func(c *fiber.Ctx) error {
		roles, err := roleRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
		}
		return c.JSON(roles)
	})

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the fixed capability/role tables, default
// categories, and the three static staff accounts if they don't exist.
func seedDefaults(db *gorm.DB, cfg *config.Config) {
	capabilityRepo := repository.NewCapabilityRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := capabilityRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed capabilities: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}
	if err := categoryRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}

	// Attach the fixed capability table to each role.
	for roleCode, capCodes := range model.RoleCapabilities {
		role, err := roleRepo.FindByCode(roleCode)
		if err != nil {
			log.Printf("Warning: role %s missing after seed: %v", roleCode, err)
			continue
		}
		if len(role.Capabilities) > 0 {
			continue
		}
		capabilities, err := capabilityRepo.FindByCodes(capCodes)
		if err != nil {
			log.Printf("Warning: failed to load capabilities for %s: %v", roleCode, err)
			continue
		}
		if err := db.Model(role).Association("Capabilities").Replace(capabilities); err != nil {
			log.Printf("Warning: failed to assign capabilities to %s: %v", roleCode, err)
		}
	}

	// Static staff accounts from configuration.
	for _, account := range cfg.StaffAccounts() {
		if _, err := userRepo.FindByUsername(account.Username); err == nil {
			continue
		}

		role, err := roleRepo.FindByCode(account.Role)
		if err != nil {
			log.Printf("Warning: role %s not found for account %s", account.Role, account.Username)
			continue
		}

		user := &model.User{
			Username: account.Username,
			FullName: account.FullName,
			RoleID:   &role.ID,
			IsActive: true,
		}
		user.CreatedBy = "system"
		user.UpdatedBy = "system"

		if err := user.SetPassword(account.Password); err != nil {
			log.Printf("Warning: failed to hash password for %s: %v", account.Username, err)
			continue
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Warning: failed to create account %s: %v", account.Username, err)
		} else {
			log.Printf("Staff account created: %s (%s)", account.Username, account.Role)
		}
	}
}
