package worker

import (
	"sort"

	"go.uber.org/zap"

	asynqqueue "github.com/Aixtrade/Tally/internal/infrastructure/queue/asynq"
	"github.com/Aixtrade/Tally/pkg/tasktype"
)

type Registry struct {
	handlers map[string]Handler
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

func (r *Registry) Register(handler Handler) {
	r.handlers[handler.Type()] = handler
	r.logger.Info("registered handler", zap.String("type", handler.Type()))
}

func (r *Registry) Get(taskType string) (Handler, bool) {
	h, ok := r.handlers[taskType]
	return h, ok
}

// Types returns the registered task types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (r *Registry) SetupServer(server *asynqqueue.Server) {
	for taskType, handler := range r.handlers {
		server.HandleFunc(taskType, handler.ProcessTask)
	}
}

func (r *Registry) HasHandler(taskType tasktype.Type) bool {
	_, ok := r.handlers[taskType.String()]
	return ok
}
