package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"kpimanager/database"
	"kpimanager/handlers"
	repository "kpimanager/repositories"
	routes "kpimanager/routes"
	services "kpimanager/services"
	"kpimanager/utils"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		// Build MongoDB Atlas connection string from individual credentials
		username := os.Getenv("MONGO_USERNAME")
		password := os.Getenv("MONGO_PASSWORD")
		cluster := os.Getenv("MONGO_CLUSTER")
		appName := os.Getenv("MONGO_APP_NAME")
		if username == "" || password == "" || cluster == "" || appName == "" {
			log.Fatal("Missing required environment variables: set MONGO_URI or MONGO_USERNAME/MONGO_PASSWORD/MONGO_CLUSTER/MONGO_APP_NAME")
		}
		uri = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
			username, password, cluster, appName)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Missing required environment variable JWT_SECRET")
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	// Set a timeout for the ping operation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the primary to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	fmt.Println("Successfully connected to MongoDB!")

	// Transactions in the assignment flow require a replica set
	checkIfReplicaSet(client)

	db := client.Database("kpi_manager")

	fmt.Println("Creating database indexes...")
	if err := database.CreateIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	kpiRepo := repository.NewKPIRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	scheduleRepo := repository.NewScheduledReportRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	kpiService := services.NewKPIService(kpiRepo, notificationRepo)
	reportService := services.NewReportService(kpiRepo, departmentRepo, scheduleRepo)
	dashboardService := services.NewDashboardService(kpiRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUserHandler(userService),
		Departments:   handlers.NewDepartmentHandler(departmentService),
		KPIs:          handlers.NewKPIHandler(kpiService),
		Reports:       handlers.NewReportHandler(reportService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Notifications: handlers.NewNotificationHandler(notificationService),
	}

	// Seed endpoint is opt-in, it wipes the database
	if os.Getenv("ENABLE_SEED") == "true" {
		h.Seed = func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			defer cancel()
			if err := database.Seed(ctx, db); err != nil {
				slog.Error("seed failed", "error", err)
				utils.HandleMessageResponse(w, "Failed to seed database", http.StatusInternalServerError)
				return
			}
			utils.HandleMessageResponse(w, "Database seeded successfully", http.StatusOK)
		}
	}

	mux := routes.Setup(h, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("Server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func checkIfReplicaSet(client *mongo.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result bson.M
	// Use the newer "hello" command instead of deprecated "isMaster"
	err := client.Database("admin").RunCommand(ctx, bson.M{"hello": 1}).Decode(&result)

	if err != nil {
		fmt.Printf("Error checking replica set: %v\n", err)
		return false
	}

	if setName, exists := result["setName"]; exists {
		fmt.Printf("Part of replica set: %v\n", setName)
		return true
	}

	fmt.Println("Not part of a replica set")
	return false
}
