package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"commandapi/core"
	"commandapi/models"
	"commandapi/models/api"
	"commandapi/services"
)

const (
	// GetCommandByIDRoute names the route used to build Location headers
	GetCommandByIDRoute = "GetCommandById"

	maxRequestBodyBytes = 1 << 20
)

type CommandsHTTPHandler struct {
	commandsService services.CommandsService
	router          *mux.Router
}

func NewCommandsHTTPHandler(commandsService services.CommandsService) *CommandsHTTPHandler {
	return &CommandsHTTPHandler{
		commandsService: commandsService,
	}
}

// ValidationProblem is the body of a 400 response for an invalid command payload
type ValidationProblem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (h *CommandsHTTPHandler) HandleGetAllCommands(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List commands request received from %s", r.RemoteAddr)

	commands, err := h.commandsService.GetAllCommands(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get commands: %v", err)
		http.Error(w, "failed to get commands", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainCommandsToAPICommands(commands))
}

func (h *CommandsHTTPHandler) HandleGetCommandByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔍 Get command request received from %s", r.RemoteAddr)

	command, ok := h.lookupCommand(w, r)
	if !ok {
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainCommandToAPICommand(command))
}

func (h *CommandsHTTPHandler) HandleCreateCommand(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create command request received from %s", r.RemoteAddr)

	var req api.CreateCommandModel
	if !h.decodeRequestBody(w, r, &req) {
		return
	}

	if err := api.Validate(&req); err != nil {
		log.Printf("❌ Invalid create command request: %v", err)
		h.writeValidationProblem(w, err)
		return
	}

	command, err := h.commandsService.CreateCommand(r.Context(), api.APICreateCommandToDomainCommand(&req))
	if err != nil {
		log.Printf("❌ Failed to create command: %v", err)
		http.Error(w, "failed to create command", http.StatusInternalServerError)
		return
	}

	if location, err := h.commandURL(command.ID); err != nil {
		log.Printf("❌ Failed to build location for command %d: %v", command.ID, err)
	} else {
		w.Header().Set("Location", location)
	}

	log.Printf("✅ Command created successfully: %d", command.ID)
	h.writeJSONResponse(w, http.StatusCreated, api.DomainCommandToAPICommand(command))
}

func (h *CommandsHTTPHandler) HandleUpdateCommand(w http.ResponseWriter, r *http.Request) {
	log.Printf("✏️ Update command request received from %s", r.RemoteAddr)

	command, ok := h.lookupCommand(w, r)
	if !ok {
		return
	}

	var req api.UpdateCommandModel
	if !h.decodeRequestBody(w, r, &req) {
		return
	}

	if err := api.Validate(&req); err != nil {
		log.Printf("❌ Invalid update command request: %v", err)
		h.writeValidationProblem(w, err)
		return
	}

	api.ApplyAPIUpdateCommandToDomainCommand(&req, command)
	h.saveCommand(w, r, command)
}

func (h *CommandsHTTPHandler) HandlePartialUpdateCommand(w http.ResponseWriter, r *http.Request) {
	log.Printf("🩹 Partial update command request received from %s", r.RemoteAddr)

	command, ok := h.lookupCommand(w, r)
	if !ok {
		return
	}

	patchDocument, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		log.Printf("❌ Failed to read patch document: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patched, err := api.ApplyCommandPatch(api.DomainCommandToAPIUpdateCommand(command), patchDocument)
	if err != nil {
		log.Printf("❌ Failed to apply patch to command %d: %v", command.ID, err)
		if core.IsValidationError(err) {
			h.writeValidationProblem(w, err)
		} else {
			http.Error(w, "failed to patch command", http.StatusInternalServerError)
		}
		return
	}

	// the patched view is checked before anything is merged into the stored command
	if err := api.Validate(patched); err != nil {
		log.Printf("❌ Patched command %d is invalid: %v", command.ID, err)
		h.writeValidationProblem(w, err)
		return
	}

	api.ApplyAPIUpdateCommandToDomainCommand(patched, command)
	h.saveCommand(w, r, command)
}

func (h *CommandsHTTPHandler) HandleDeleteCommand(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete command request received from %s", r.RemoteAddr)

	command, ok := h.lookupCommand(w, r)
	if !ok {
		return
	}

	if err := h.commandsService.DeleteCommand(r.Context(), command.ID); err != nil {
		log.Printf("❌ Failed to delete command %d: %v", command.ID, err)
		if core.IsNotFoundError(err) {
			http.Error(w, "command not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to delete command", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ Command deleted successfully: %d", command.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommandsHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering commands API endpoints")
	h.router = router

	router.HandleFunc("/api/commands", h.HandleGetAllCommands).Methods("GET")
	log.Printf("✅ GET /api/commands endpoint registered")

	router.HandleFunc("/api/commands/{id:[0-9]+}", h.HandleGetCommandByID).
		Methods("GET").
		Name(GetCommandByIDRoute)
	log.Printf("✅ GET /api/commands/{id} endpoint registered")

	router.HandleFunc("/api/commands", h.HandleCreateCommand).Methods("POST")
	log.Printf("✅ POST /api/commands endpoint registered")

	router.HandleFunc("/api/commands/{id:[0-9]+}", h.HandleUpdateCommand).Methods("PUT")
	log.Printf("✅ PUT /api/commands/{id} endpoint registered")

	router.HandleFunc("/api/commands/{id:[0-9]+}", h.HandlePartialUpdateCommand).Methods("PATCH")
	log.Printf("✅ PATCH /api/commands/{id} endpoint registered")

	router.HandleFunc("/api/commands/{id:[0-9]+}", h.HandleDeleteCommand).Methods("DELETE")
	log.Printf("✅ DELETE /api/commands/{id} endpoint registered")

	log.Printf("✅ All commands API endpoints registered successfully")
}

// lookupCommand loads the command named by the {id} path variable.
// It writes the 404 or 500 response itself and reports whether the caller should continue.
func (h *CommandsHTTPHandler) lookupCommand(w http.ResponseWriter, r *http.Request) (*models.Command, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		// the route only matches digits, so this is an out-of-range id no command can have
		log.Printf("❌ Command ID out of range: %s", mux.Vars(r)["id"])
		http.Error(w, "command not found", http.StatusNotFound)
		return nil, false
	}

	maybeCommand, err := h.commandsService.GetCommandByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to get command %d: %v", id, err)
		http.Error(w, "failed to get command", http.StatusInternalServerError)
		return nil, false
	}
	if maybeCommand.IsAbsent() {
		log.Printf("❌ Command not found: %d", id)
		http.Error(w, "command not found", http.StatusNotFound)
		return nil, false
	}

	return maybeCommand.MustGet(), true
}

func (h *CommandsHTTPHandler) saveCommand(w http.ResponseWriter, r *http.Request, command *models.Command) {
	if err := h.commandsService.UpdateCommand(r.Context(), command); err != nil {
		log.Printf("❌ Failed to update command %d: %v", command.ID, err)
		if core.IsNotFoundError(err) {
			http.Error(w, "command not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to update command", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ Command updated successfully: %d", command.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommandsHTTPHandler) decodeRequestBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dest); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *CommandsHTTPHandler) commandURL(id int64) (string, error) {
	if h.router == nil {
		return "", errors.New("endpoints are not registered")
	}
	route := h.router.Get(GetCommandByIDRoute)
	if route == nil {
		return "", errors.New("route " + GetCommandByIDRoute + " is not registered")
	}
	url, err := route.URL("id", strconv.FormatInt(id, 10))
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (h *CommandsHTTPHandler) writeValidationProblem(w http.ResponseWriter, err error) {
	problem := ValidationProblem{
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
	}

	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		problem.Errors = validationErr.Errors
	} else {
		problem.Detail = err.Error()
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		log.Printf("❌ Failed to encode validation problem: %v", err)
	}
}

func (h *CommandsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
