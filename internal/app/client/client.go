package client

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/client/config"
)

// Kinds served by the API, with the columns shown by table output.
var kindColumns = map[string][]string{
	"users":    {"id", "first_name", "last_name", "email", "phone_number", "salary"},
	"books":    {"id", "title", "author", "publisher", "published_date", "page_count", "language"},
	"products": {"id", "name", "description", "price"},
}

// App - клиентское приложение поверх REST API сервера
type App struct {
	cfg  *config.Config
	log  *slog.Logger
	http *HTTPClient
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не задана")
	}
	return &App{
		cfg:  cfg,
		log:  log.With("component", "client"),
		http: NewHTTPClient(cfg, log),
	}, nil
}

// Columns returns the table columns for kind.
func Columns(kind string) []string {
	return kindColumns[kind]
}

func checkKind(kind string) error {
	if _, ok := kindColumns[kind]; ok {
		return nil
	}
	known := make([]string, 0, len(kindColumns))
	for k := range kindColumns {
		known = append(known, k)
	}
	slices.Sort(known)
	return fmt.Errorf("неизвестный вид записей %q (доступны: %s)", kind, strings.Join(known, ", "))
}

func (a *App) Ping(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

func (a *App) ListRecords(ctx context.Context, kind string) ([]Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return a.http.List(ctx, kind)
}

func (a *App) GetRecord(ctx context.Context, kind string, id int64) (Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return a.http.Get(ctx, kind, id)
}

func (a *App) LatestRecord(ctx context.Context, kind string) (Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return a.http.Latest(ctx, kind)
}

func (a *App) CreateRecord(ctx context.Context, kind string, data json.RawMessage) (Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	rec, err := a.http.Create(ctx, kind, data)
	if err != nil {
		return nil, err
	}
	a.log.Info("Запись создана", "kind", kind, "id", rec["id"])
	return rec, nil
}

func (a *App) UpdateRecord(ctx context.Context, kind string, id int64, data json.RawMessage) (Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	rec, err := a.http.Update(ctx, kind, id, data)
	if err != nil {
		return nil, err
	}
	a.log.Info("Запись обновлена", "kind", kind, "id", id)
	return rec, nil
}

func (a *App) DeleteRecord(ctx context.Context, kind string, id int64) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := a.http.Delete(ctx, kind, id); err != nil {
		return err
	}
	a.log.Info("Запись удалена", "kind", kind, "id", id)
	return nil
}

type appKey struct{}

// WithApp stores app in ctx for cobra subcommands.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext returns the App stored by WithApp.
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(appKey{}).(*App)
	return app, ok && app != nil
}
