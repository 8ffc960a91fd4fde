package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/service"
	"github.com/theirongolddev/horeca/internal/source"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// DishValues backs the new-dish form. Amounts are kept as typed text so
// they accept a decimal comma.
type DishValues struct {
	ClientID   int64
	Name       string
	Category   string
	SalePrice  string
	ManualCost string
	Volume     string
	Active     bool
}

// NewDishValues preselects clientID, or the first client when it is 0.
func NewDishValues(clientID int64, clients []model.Client) DishValues {
	if clientID == 0 && len(clients) > 0 {
		clientID = clients[0].ID
	}
	return DishValues{ClientID: clientID, Active: true, Volume: "0", ManualCost: "0"}
}

// NewDishForm returns the huh form that fills v.
func NewDishForm(clients []model.Client, v *DishValues) *huh.Form {
	opts := make([]huh.Option[int64], 0, len(clients))
	for _, c := range clients {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Cliente").
				Options(opts...).
				Value(&v.ClientID),
			huh.NewInput().
				Title("Nombre del plato").
				Value(&v.Name).
				Validate(required),
			huh.NewInput().
				Title("Categoría").
				Placeholder("Entrantes, Principales, Postres...").
				Value(&v.Category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("PVP (€)").
				Value(&v.SalePrice).
				Validate(positiveAmount),
			huh.NewInput().
				Title("Coste manual (€)").
				Description("Se sustituye por el escandallo al añadir ingredientes").
				Value(&v.ManualCost).
				Validate(amount),
			huh.NewInput().
				Title("Unidades al mes").
				Value(&v.Volume).
				Validate(count),
			huh.NewConfirm().
				Title("¿Plato activo en carta?").
				Affirmative("Sí").
				Negative("No").
				Value(&v.Active),
		),
	).WithShowHelp(true)
}

// Input converts the form values to a service request.
func (v DishValues) Input() (service.NewDish, error) {
	sale, err := source.ParseAmount(v.SalePrice)
	if err != nil {
		return service.NewDish{}, fmt.Errorf("PVP: %w", err)
	}
	cost, err := source.ParseAmount(v.ManualCost)
	if err != nil {
		return service.NewDish{}, fmt.Errorf("coste manual: %w", err)
	}
	vol, err := parseCount(v.Volume)
	if err != nil {
		return service.NewDish{}, fmt.Errorf("unidades: %w", err)
	}
	return service.NewDish{
		ClientID:      v.ClientID,
		Name:          strings.TrimSpace(v.Name),
		Category:      strings.TrimSpace(v.Category),
		SalePrice:     sale,
		ManualCost:    cost,
		MonthlyVolume: vol,
		Active:        v.Active,
	}, nil
}

// SetupValues backs the first-run setup form.
type SetupValues struct {
	Company     string
	Theme       string
	MarginFloor string
	FoodCostCap string
	StarMargin  string
	StarVolume  string
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		Company:     cfg.General.Company,
		Theme:       cfg.Appearance.Theme,
		MarginFloor: formatFloat(cfg.Thresholds.MarginFloorPct),
		FoodCostCap: formatFloat(cfg.Thresholds.FoodCostCeilingPct),
		StarMargin:  formatFloat(cfg.Policy.StarMarginPct),
		StarVolume:  strconv.Itoa(cfg.Policy.StarVolume),
	}
}

// NewSetupForm returns the huh form that fills v. clients is shown in
// the welcome note.
func NewSetupForm(clients int, v *SetupValues) *huh.Form {
	welcome := "Aún no hay clientes. Importa los libros Excel con `horeca import <dir>`."
	if clients > 0 {
		welcome = fmt.Sprintf("La base de datos tiene %d clientes.", clients)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Bienvenido a horeca").
				Description(welcome+"\nVamos a configurar unos pocos ajustes."),
			huh.NewInput().
				Title("Nombre de la consultora").
				Description("Aparece en las fichas técnicas exportadas").
				Value(&v.Company).
				Validate(required),
			huh.NewSelect[string]().
				Title("Tema de color").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Margen mínimo (%)").
				Description("Los platos por debajo generan alerta").
				Value(&v.MarginFloor).
				Validate(percent),
			huh.NewInput().
				Title("Food cost máximo (%)").
				Value(&v.FoodCostCap).
				Validate(percent),
			huh.NewInput().
				Title("Margen de plato estrella (%)").
				Value(&v.StarMargin).
				Validate(percent),
			huh.NewInput().
				Title("Volumen de plato estrella (uds/mes)").
				Value(&v.StarVolume).
				Validate(count),
		),
	).WithShowHelp(true)
}

// Apply writes the form values into cfg.
func (v SetupValues) Apply(cfg config.Config) (config.Config, error) {
	floor, err := parsePercent(v.MarginFloor)
	if err != nil {
		return cfg, fmt.Errorf("margen mínimo: %w", err)
	}
	ceiling, err := parsePercent(v.FoodCostCap)
	if err != nil {
		return cfg, fmt.Errorf("food cost máximo: %w", err)
	}
	star, err := parsePercent(v.StarMargin)
	if err != nil {
		return cfg, fmt.Errorf("margen estrella: %w", err)
	}
	vol, err := parseCount(v.StarVolume)
	if err != nil {
		return cfg, fmt.Errorf("volumen estrella: %w", err)
	}

	cfg.General.Company = strings.TrimSpace(v.Company)
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	cfg.Thresholds.MarginFloorPct = floor
	cfg.Thresholds.FoodCostCeilingPct = ceiling
	cfg.Policy.StarMarginPct = star
	cfg.Policy.StarVolume = vol
	return cfg, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("obligatorio")
	}
	return nil
}

func amount(s string) error {
	d, err := source.ParseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return errors.New("no puede ser negativo")
	}
	return nil
}

func positiveAmount(s string) error {
	d, err := source.ParseAmount(s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return errors.New("debe ser mayor que 0")
	}
	return nil
}

func percent(s string) error {
	_, err := parsePercent(s)
	return err
}

func count(s string) error {
	_, err := parseCount(s)
	return err
}

func parsePercent(s string) (float64, error) {
	d, err := source.ParseAmount(s)
	if err != nil {
		return 0, err
	}
	f := d.InexactFloat64()
	if f < 0 || f > 100 {
		return 0, errors.New("debe estar entre 0 y 100")
	}
	return f, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("debe ser un número entero positivo")
	}
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
