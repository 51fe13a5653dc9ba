package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jabezasir421/Chat-app-api/modules/broadcast"
	"github.com/jabezasir421/Chat-app-api/modules/chat"
	"github.com/jabezasir421/Chat-app-api/modules/task"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	// Health check
	m.app.Get("/health", m.healthHandler)

	// WebSocket endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(m.handleWebSocket))

	api := m.app.Group("/api")

	// Task endpoints, all owner-scoped via X-User-Id
	tasks := api.Group("/tasks", RequireUserID())
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)

	// Chat endpoints
	api.Get("/messages", m.listMessages)
	api.Post("/messages", RequireUserID(), m.submitMessage)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	details := map[string]any{
		"module": "api",
		"port":   m.port,
	}
	if m.hub != nil {
		details["connected_clients"] = m.hub.ClientCount()
	}
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Details: details,
	})
}

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := validateCreateTask(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	resp, err := m.taskAdapter.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		OwnerID:     requestUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "create_failed",
			Message: "Failed to create task",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toAPITaskResponse(resp))
}

// listTasks handles GET /api/tasks with optional status and category filters.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	status := c.Query("status", "")
	category := c.Query("category", "")

	if err := validateStatusFilter(status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	resp, err := m.taskAdapter.ListTasks(c.UserContext(), &task.ListTasksRequest{
		OwnerID:  requestUserID(c),
		Status:   status,
		Category: category,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list tasks",
		})
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toAPITaskResponse(&t))
	}

	return c.JSON(ListTasksResponse{
		Tasks: tasks,
		Total: resp.Total,
	})
}

// getTask handles GET /api/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.GetTask(c.UserContext(), requestUserID(c), c.Params("id"))
	if err != nil {
		return m.taskErrorResponse(c, err)
	}

	return c.JSON(toAPITaskResponse(resp))
}

// updateTask handles PUT /api/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := validateUpdateTask(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	resp, err := m.taskAdapter.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		OwnerID:     requestUserID(c),
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		return m.taskErrorResponse(c, err)
	}

	return c.JSON(toAPITaskResponse(resp))
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	deleted, err := m.taskAdapter.DeleteTask(c.UserContext(), requestUserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete task",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// listMessages handles GET /api/messages.
func (m *APIModule) listMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", chat.DefaultRecentLimit)

	messages, err := m.chatAdapter.RecentMessages(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list messages",
		})
	}

	resp := ListMessagesResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
		Total:    len(messages),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, toAPIMessageResponse(&msg))
	}

	return c.JSON(resp)
}

// submitMessage handles POST /api/messages.
func (m *APIModule) submitMessage(c *fiber.Ctx) error {
	var req SubmitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := validateSubmitMessage(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	msg, err := m.chatAdapter.SubmitMessage(c.UserContext(), requestUserID(c), req.Content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "submit_failed",
			Message: "Failed to submit message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toAPIMessageResponse(msg))
}

// wsInbound is the frame clients send over the WebSocket connection.
type wsInbound struct {
	Content string `json:"content"`
}

// wsError is the frame sent back when an inbound message is rejected.
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleWebSocket handles GET /ws. Clients connect with ?user_id=<id>,
// send {"content": ...} frames, and receive every broadcast message.
func (m *APIModule) handleWebSocket(conn *websocket.Conn) {
	userID := conn.Query("user_id")
	if userID == "" {
		_ = conn.WriteJSON(wsError{Type: "error", Error: "user_id query parameter is required"})
		_ = conn.Close()
		return
	}

	client := &broadcast.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
	}
	m.hub.Register(client)

	// Submissions are scoped to the connection: when the client goes away,
	// in-flight service calls are cancelled with it.
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		m.hub.Unregister(client)
		_ = conn.Close()
	}()

	log.Printf("[api] WebSocket connected: user %s", userID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[api] WebSocket error for user %s: %v", userID, err)
			}
			break
		}

		// The broadcast back to this client arrives via the hub.
		if errFrame := m.processInbound(ctx, userID, raw); errFrame != nil {
			_ = conn.WriteJSON(*errFrame)
		}
	}

	log.Printf("[api] WebSocket disconnected: user %s", userID)
}

// processInbound parses, validates and submits one client frame. A non-nil
// return is the error frame to send back.
func (m *APIModule) processInbound(ctx context.Context, userID string, raw []byte) *wsError {
	var inbound wsInbound
	if err := json.Unmarshal(raw, &inbound); err != nil {
		return &wsError{Type: "error", Error: "invalid message format"}
	}

	if err := validateSubmitMessage(&SubmitMessageRequest{Content: inbound.Content}); err != nil {
		return &wsError{Type: "error", Error: err.Error()}
	}

	if _, err := m.chatAdapter.SubmitMessage(ctx, userID, inbound.Content); err != nil {
		log.Printf("[api] Failed to submit message for user %s: %v", userID, err)
		return &wsError{Type: "error", Error: "failed to submit message"}
	}

	return nil
}

// taskErrorResponse maps core task errors onto HTTP responses. A missing
// task and a task owned by someone else produce the same 404.
func (m *APIModule) taskErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, task.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "server_error",
		Message: "Internal Server Error",
	})
}

// toAPITaskResponse converts a task service response to the HTTP shape.
func toAPITaskResponse(t *task.TaskResponse) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// toAPIMessageResponse converts a chat service response to the HTTP shape.
func toAPIMessageResponse(msg *chat.MessageResponse) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
