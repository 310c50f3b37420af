package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
	apphttp "github.com/semed-merenda/merenda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes do portal público: só escola e entregas, o suficiente para as rotas de
// conferência.
// ──────────────────────────────────────────────────────────────────────────────

type fakePublicSchoolRepo struct{ school *entity.School }

func (f *fakePublicSchoolRepo) Create(*entity.School) error               { return nil }
func (f *fakePublicSchoolRepo) GetByID(id string) (*entity.School, error) { return nil, nil }
func (f *fakePublicSchoolRepo) GetBySlug(slug string) (*entity.School, error) {
	if f.school != nil && f.school.PublicSlug == slug {
		return f.school, nil
	}
	return nil, nil
}
func (f *fakePublicSchoolRepo) Update(*entity.School) error { return nil }
func (f *fakePublicSchoolRepo) List(string, *bool, int, int) ([]*entity.School, error) {
	return nil, nil
}
func (f *fakePublicSchoolRepo) SlugExists(string, string) (bool, error) { return false, nil }
func (f *fakePublicSchoolRepo) Delete(string) error                     { return nil }

type fakePublicDeliveryRepo struct {
	deliveries map[string]*entity.Delivery
	latestID   string
}

func (f *fakePublicDeliveryRepo) Create(*entity.Delivery) error { return nil }
func (f *fakePublicDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return f.deliveries[id], nil
}
func (f *fakePublicDeliveryRepo) GetForUpdate(id string) (*entity.Delivery, error) {
	return f.deliveries[id], nil
}
func (f *fakePublicDeliveryRepo) Update(*entity.Delivery) error { return nil }
func (f *fakePublicDeliveryRepo) ReplaceItems(string, []entity.DeliveryItem) error {
	return nil
}
func (f *fakePublicDeliveryRepo) UpdateItemConference(*entity.DeliveryItem) error { return nil }
func (f *fakePublicDeliveryRepo) Delete(string) error                             { return nil }
func (f *fakePublicDeliveryRepo) List(repository.DeliveryFilter, int, int) ([]*entity.Delivery, error) {
	return nil, nil
}
func (f *fakePublicDeliveryRepo) LatestEnabledForSchool(string) (*entity.Delivery, error) {
	return f.deliveries[f.latestID], nil
}
func (f *fakePublicDeliveryRepo) LatestCreatorForSchool(string) (string, error) { return "", nil }

var (
	_ repository.SchoolRepository   = (*fakePublicSchoolRepo)(nil)
	_ repository.DeliveryRepository = (*fakePublicDeliveryRepo)(nil)
)

// Duas entregas SENT habilitadas para a mesma escola; del-2 é a mais recente.
func buildPublicApp(t *testing.T) *fiber.App {
	t.Helper()
	sentOld := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sentNew := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	schoolRepo := &fakePublicSchoolRepo{school: &entity.School{
		ID:          "school-1",
		Name:        "EM Paulo Freire",
		IsActive:    true,
		PublicSlug:  "em-paulo-freire",
		PublicToken: "tok-123",
	}}
	deliveryRepo := &fakePublicDeliveryRepo{
		deliveries: map[string]*entity.Delivery{
			"del-1": {ID: "del-1", SchoolID: "school-1", Status: entity.DeliveryStatusSent,
				ConferenceEnabled: true, SentAt: &sentOld},
			"del-2": {ID: "del-2", SchoolID: "school-1", Status: entity.DeliveryStatusSent,
				ConferenceEnabled: true, SentAt: &sentNew},
			"del-outra": {ID: "del-outra", SchoolID: "school-2", Status: entity.DeliveryStatusSent,
				ConferenceEnabled: true, SentAt: &sentNew},
			"del-draft": {ID: "del-draft", SchoolID: "school-1", Status: entity.DeliveryStatusDraft,
				ConferenceEnabled: false},
		},
		latestID: "del-2",
	}

	handler := apphttp.NewPublicHandler(schoolRepo, deliveryRepo, nil, nil, nil, nil, nil)
	app := fiber.New()
	app.Get("/public/schools/:slug/:token/deliveries/current", handler.CurrentDelivery)
	return app
}

func getPublicDelivery(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Seleção da entrega alvo da conferência
// ──────────────────────────────────────────────────────────────────────────────

func TestPublicCurrentDelivery_SemParametro_UsaMaisRecente(t *testing.T) {
	app := buildPublicApp(t)

	status, body := getPublicDelivery(t, app,
		"/public/schools/em-paulo-freire/tok-123/deliveries/current")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "del-2", body["id"])
}

// O link de conferência carrega o delivery_id; com duas entregas SENT o link
// da mais antiga deve chegar nela, não na mais nova.
func TestPublicCurrentDelivery_ComDeliveryID_UsaEntregaDoLink(t *testing.T) {
	app := buildPublicApp(t)

	status, body := getPublicDelivery(t, app,
		"/public/schools/em-paulo-freire/tok-123/deliveries/current?delivery_id=del-1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "del-1", body["id"])
}

func TestPublicCurrentDelivery_EntregaDeOutraEscola_Retorna404(t *testing.T) {
	app := buildPublicApp(t)

	status, body := getPublicDelivery(t, app,
		"/public/schools/em-paulo-freire/tok-123/deliveries/current?delivery_id=del-outra")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NO_ACTIVE_DELIVERY", body["code"])
}

func TestPublicCurrentDelivery_EntregaNaoHabilitada_Retorna404(t *testing.T) {
	app := buildPublicApp(t)

	status, body := getPublicDelivery(t, app,
		"/public/schools/em-paulo-freire/tok-123/deliveries/current?delivery_id=del-draft")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NO_ACTIVE_DELIVERY", body["code"])
}

func TestPublicCurrentDelivery_TokenErrado_Retorna401(t *testing.T) {
	app := buildPublicApp(t)

	status, body := getPublicDelivery(t, app,
		"/public/schools/em-paulo-freire/tok-errado/deliveries/current")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}
