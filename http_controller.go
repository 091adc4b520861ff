package admissions

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPConfig configures the admissions HTTP controller.
type HTTPConfig struct {
	// Debug dumps request payloads to stdout
	Debug bool

	// ErrorHandler handles errors (optional)
	ErrorHandler func(ctx router.Context, err error) error
}

// AdmissionsController exposes the review workflows as JSON routes. Mount it
// behind the actor middleware so handlers see an authenticated Actor in the
// request context.
type AdmissionsController struct {
	approve *ApproveApplicationHandler
	reject  *RejectApplicationHandler
	remove  *DeleteApplicationHandler
	repo    RepositoryManager
	config  HTTPConfig
	logger  Logger
}

// NewAdmissionsController creates a controller wired to the workflow handlers.
func NewAdmissionsController(approve *ApproveApplicationHandler, reject *RejectApplicationHandler, remove *DeleteApplicationHandler, repo RepositoryManager, cfg HTTPConfig) *AdmissionsController {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = RenderWorkflowError
	}

	return &AdmissionsController{
		approve: approve,
		reject:  reject,
		remove:  remove,
		repo:    repo,
		config:  cfg,
		logger:  defLogger{},
	}
}

// WithLogger overrides the controller logger.
func (c *AdmissionsController) WithLogger(logger Logger) *AdmissionsController {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// RegisterRoutes registers the admissions routes on the given group.
func (c *AdmissionsController) RegisterRoutes(group RouteRegistrar) {
	group.Post("/applications/approve", c.Approve)
	group.Post("/applications/reject", c.Reject)
	group.Post("/applications/delete", c.Delete)
	group.Get("/applications/:id", c.ShowApplication)
}

// Approve converts a pending application into an active teacher account.
func (c *AdmissionsController) Approve(ctx router.Context) error {
	payload := new(ApproveApplicationMessage)

	if err := ctx.Bind(payload); err != nil {
		c.logger.Error("approve application parse payload: %v", err)
		return c.handleError(ctx, bindError(err))
	}

	if c.config.Debug {
		fmt.Println("======= ADMISSIONS APPROVE ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=================================")
	}

	receipt, err := c.approve.Execute(ctx.Context(), *payload)
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"ok":         true,
		"teacherUid": receipt.TeacherUID,
		"email":      receipt.Email,
	})
}

// Reject marks an application rejected.
func (c *AdmissionsController) Reject(ctx router.Context) error {
	payload := new(RejectApplicationMessage)

	if err := ctx.Bind(payload); err != nil {
		c.logger.Error("reject application parse payload: %v", err)
		return c.handleError(ctx, bindError(err))
	}

	if err := c.reject.Execute(ctx.Context(), *payload); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"ok": true,
	})
}

// Delete removes an application intake record.
func (c *AdmissionsController) Delete(ctx router.Context) error {
	payload := new(DeleteApplicationMessage)

	if err := ctx.Bind(payload); err != nil {
		c.logger.Error("delete application parse payload: %v", err)
		return c.handleError(ctx, bindError(err))
	}

	if err := c.remove.Execute(ctx.Context(), *payload); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"ok": true,
	})
}

// ShowApplication returns a single application record.
func (c *AdmissionsController) ShowApplication(ctx router.Context) error {
	id := ctx.Param("id")

	app, err := c.repo.Applications().GetByID(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return c.handleError(ctx, ApplicationNotFound(id))
		}
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"ok":          true,
		"application": app,
	})
}

func (c *AdmissionsController) handleError(ctx router.Context, err error) error {
	return c.config.ErrorHandler(ctx, err)
}

func bindError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse request payload").
		WithTextCode(TextCodeInvalidArgument).
		WithCode(goerrors.CodeBadRequest)
}

// RenderWorkflowError maps the error taxonomy onto HTTP statuses and renders
// the JSON error envelope.
func RenderWorkflowError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "unexpected error")
	}

	status := statusForCategory(richErr.Category)

	body := map[string]any{
		"code":      status,
		"text_code": richErr.TextCode,
		"message":   richErr.Message,
	}

	if fields, ok := richErr.Metadata["fields"]; ok {
		body["fields"] = fields
	}

	return ctx.JSON(status, map[string]any{
		"ok":    false,
		"error": body,
	})
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return router.StatusForbidden
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	case goerrors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}
