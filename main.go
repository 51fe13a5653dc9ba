package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/jabezasir421/Chat-app-api/modules/api"
	"github.com/jabezasir421/Chat-app-api/modules/broadcast"
	"github.com/jabezasir421/Chat-app-api/modules/chat"
	"github.com/jabezasir421/Chat-app-api/modules/notification"
	"github.com/jabezasir421/Chat-app-api/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Chat App API - Broadcast Chat + Task Tracking ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	taskModule := task.NewModule()
	chatModule := chat.NewModule()
	notificationModule := notification.NewModule()
	broadcastModule := broadcast.NewModule()
	apiModule := api.NewModule()

	// Inject the broadcast hub into the API module.
	// (Done manually because the hub is not exposed via ServiceContainer.)
	apiModule.SetHub(broadcastModule.GetHub())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	app.Register(taskModule)         // Core domain (owner-scoped task CRUD)
	app.Register(chatModule)         // Chat service + event emitter
	app.Register(notificationModule) // Event consumer (task activity log)
	app.Register(broadcastModule)    // WebSocket hub + event consumer
	app.Register(apiModule)          // Driving adapter (Fiber HTTP/WebSocket server)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  POST   /api/tasks        - Create a task (X-User-Id required)")
	log.Println("  GET    /api/tasks        - List tasks (status/category filters)")
	log.Println("  GET    /api/tasks/:id    - Get a task by ID")
	log.Println("  PUT    /api/tasks/:id    - Update a task (partial)")
	log.Println("  DELETE /api/tasks/:id    - Delete a task")
	log.Println("  GET    /api/messages     - Recent chat messages (limit, default 50)")
	log.Println("  POST   /api/messages     - Submit a chat message (X-User-Id required)")
	log.Println("  GET    /health           - Health check")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws?user_id=<id>):", port)
	log.Println("  Send {\"content\": ...} frames; every submitted message is broadcast")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
