package analysis

import (
	"context"
	"log"
	"net/http"

	"gorelate/domain/core"
	"gorelate/ports"

	"github.com/gin-gonic/gin"
)

// Server exposes the analysis engine as a JSON service with the job-based
// wire contract: POST /process starts a task, GET /progress/:task_id reports
// its state until terminal.
type Server struct {
	engine *Engine
	tasks  *TaskStore
	router *gin.Engine
}

// NewServer creates the analysis JSON service.
func NewServer(engine *Engine) *Server {
	s := &Server{
		engine: engine,
		tasks:  NewTaskStore(),
		router: gin.Default(),
	}
	s.router.POST("/process", s.handleProcess)
	s.router.GET("/progress/:task_id", s.handleProgress)
	return s
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	log.Printf("[AnalysisServer] Listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleProcess(c *gin.Context) {
	var req ports.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":          ports.StatusError,
			"message":         "request body is not valid JSON",
			"steps_completed": []string{},
		})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":          ports.StatusError,
			"message":         "input data is empty or not properly formatted",
			"steps_completed": []string{},
		})
		return
	}
	if len(req.SelectedColumns) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":          ports.StatusError,
			"message":         "selected columns are missing or not in the correct format",
			"steps_completed": []string{},
		})
		return
	}

	taskID := s.tasks.Create()
	go s.runTask(taskID, req)

	c.JSON(http.StatusOK, gin.H{
		"status":  ports.StatusProcessing,
		"task_id": taskID.String(),
	})
}

// runTask executes the analysis in the background and records the terminal
// state in the task store.
func (s *Server) runTask(taskID core.TaskID, req ports.SubmitRequest) {
	onProgress := func(progress float64, stepsCompleted []string, _ float64) {
		s.tasks.UpdateProgress(taskID, progress, stepsCompleted)
	}
	result, err := s.engine.Analyze(context.Background(), req, onProgress)
	if err != nil {
		log.Printf("[AnalysisServer] Task %s failed: %v", taskID, err)
		s.tasks.Fail(taskID, err.Error())
		return
	}
	s.tasks.Complete(taskID, result)
}

func (s *Server) handleProgress(c *gin.Context) {
	taskID, err := core.ParseTaskID(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":          ports.StatusError,
			"message":         "invalid task ID",
			"steps_completed": []string{},
		})
		return
	}

	state, ok := s.tasks.Get(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status":          ports.StatusError,
			"message":         "invalid task ID",
			"steps_completed": []string{},
		})
		return
	}

	switch state.Status {
	case ports.StatusSuccess:
		c.JSON(http.StatusOK, gin.H{
			"status":          ports.StatusSuccess,
			"progress":        100,
			"steps_completed": state.StepsCompleted,
			"eta":             0,
			"results": gin.H{
				"pairs":            state.Results.Pairs,
				"average_strength": state.Results.AverageStrength,
				"valid_pairs":      state.Results.ValidPairs,
			},
		})
	case ports.StatusError:
		c.JSON(http.StatusOK, gin.H{
			"status":          ports.StatusError,
			"message":         state.Message,
			"steps_completed": state.StepsCompleted,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":          ports.StatusProcessing,
			"progress":        state.Progress,
			"steps_completed": state.StepsCompleted,
			"eta":             state.ETASeconds,
		})
	}
}
