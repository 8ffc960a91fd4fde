package source

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/horeca/internal/model"
)

// ReadDir reads the legacy workbooks found in dir. Bad rows are skipped and
// listed in the report; references to unknown clients get placeholder
// clients, and lines pointing at unknown dishes or ingredients are dropped.
func ReadDir(dir string) (model.Dataset, Report, error) {
	var ds model.Dataset
	rep := newReport()

	files, err := ScanDir(dir)
	if err != nil {
		return ds, rep, err
	}
	if len(files) == 0 {
		return ds, rep, fmt.Errorf("no %s or %s in %s", CRMWorkbook, OperationsWorkbook, dir)
	}

	if path, ok := files[CRMWorkbook]; ok {
		rep.Files = append(rep.Files, path)
		sheets, err := openSheets(path, SheetClients)
		if err != nil {
			return ds, rep, err
		}
		if s, ok := sheets[SheetClients]; ok {
			ds.Clients = readClients(s, &rep)
		} else {
			rep.MissingSheets = append(rep.MissingSheets, SheetClients)
		}
	}

	if path, ok := files[OperationsWorkbook]; ok {
		rep.Files = append(rep.Files, path)
		names := []string{SheetIngredients, SheetPrices, SheetDishes, SheetLines, SheetPurchases}
		sheets, err := openSheets(path, names...)
		if err != nil {
			return ds, rep, err
		}
		for _, n := range names {
			if _, ok := sheets[n]; !ok {
				rep.MissingSheets = append(rep.MissingSheets, n)
			}
		}
		if s, ok := sheets[SheetIngredients]; ok {
			ds.Ingredients = readIngredients(s, &rep)
		}
		if s, ok := sheets[SheetPrices]; ok {
			ds.Prices = readPrices(s, &rep)
		}
		if s, ok := sheets[SheetDishes]; ok {
			ds.Dishes = readDishes(s, &rep)
		}
		if s, ok := sheets[SheetLines]; ok {
			ds.Lines = readLines(s, &rep)
		}
		if s, ok := sheets[SheetPurchases]; ok {
			ds.Purchases = readPurchases(s, &rep)
		}
	}

	reconcile(&ds, &rep)
	return ds, rep, nil
}

// each calls fn for every non-blank row and records rows that failed.
func each(s *sheet, rep *Report, fn func(p *rowParser) bool) {
	for i := range s.rows {
		if blank(s.rows[i]) {
			continue
		}
		p := s.parser(i)
		ok := fn(p)
		if p.err != nil {
			rep.Errors = append(rep.Errors, *p.err)
			continue
		}
		if ok {
			rep.Rows[s.name]++
		}
	}
}

func readClients(s *sheet, rep *Report) []model.Client {
	var out []model.Client
	each(s, rep, func(p *rowParser) bool {
		c := model.Client{
			ID:      p.id("ID"),
			Name:    p.str("Nombre Comercial"),
			City:    p.str("Ciudad"),
			Service: p.str("Tipo Local"),
			MRR:     p.dec("MRR"),
		}
		if c.MRR.IsZero() {
			c.MRR = p.dec("Precio Mensual")
		}
		c.Active = !s.has("Estado") || p.flag("Estado", true)
		if c.Name == "" {
			p.fail("Nombre Comercial", "missing name")
		}
		if p.err != nil {
			return false
		}
		out = append(out, c)
		return true
	})
	return out
}

func readIngredients(s *sheet, rep *Report) []model.Ingredient {
	var out []model.Ingredient
	each(s, rep, func(p *rowParser) bool {
		ing := model.Ingredient{
			ID:          p.id("ID Ingrediente"),
			Name:        p.str("Nombre"),
			Category:    p.str("Categoría"),
			Unit:        p.str("Unidad Compra"),
			MarketPrice: p.dec("Precio Mercado Medio"),
			Seasonality: p.str("Estacionalidad"),
			UpdatedAt:   p.date("Última Actualización"),
		}
		if ing.Name == "" {
			p.fail("Nombre", "missing name")
		}
		if p.err != nil {
			return false
		}
		out = append(out, ing)
		return true
	})
	return out
}

func readPrices(s *sheet, rep *Report) []model.ClientPrice {
	var out []model.ClientPrice
	each(s, rep, func(p *rowParser) bool {
		cp := model.ClientPrice{
			ID:             p.optID("ID Precio"),
			ClientID:       p.id("ID Cliente"),
			ClientName:     p.str("Nombre Cliente"),
			IngredientID:   p.id("ID Ingrediente"),
			IngredientName: p.str("Nombre Ingrediente"),
			Price:          p.dec("Precio Cliente"),
			Unit:           p.str("Unidad"),
			ReferencePrice: p.dec("Precio Mercado Referencia"),
			DeviationPct:   p.dec("Desviación %"),
			Supplier:       p.str("Proveedor"),
			Notes:          p.str("Notas"),
			UpdatedAt:      p.date("Última Actualización"),
		}
		if p.err != nil {
			return false
		}
		out = append(out, cp)
		return true
	})
	return out
}

func readDishes(s *sheet, rep *Report) []model.Dish {
	var out []model.Dish
	each(s, rep, func(p *rowParser) bool {
		d := model.Dish{
			ID:               p.id("ID Plato"),
			ClientID:         p.id("ID Cliente"),
			ClientName:       p.str("Nombre Cliente"),
			Name:             p.str("Nombre Plato"),
			Category:         p.str("Categoría"),
			SalePrice:        p.dec("Precio Venta"),
			TotalCost:        p.dec("Coste Total"),
			MonthlyVolume:    p.int("Ventas/Mes"),
			Classification:   model.Classification(p.str("Clasificación")),
			RecommendedPrice: p.dec("Precio Recomendado"),
			Active:           p.flag("Activo", true),
			Notes:            p.str("Notas"),
		}
		if d.Name == "" {
			p.fail("Nombre Plato", "missing name")
		}
		if p.err != nil {
			return false
		}
		out = append(out, d)
		return true
	})
	return out
}

func readLines(s *sheet, rep *Report) []model.RecipeLine {
	var out []model.RecipeLine
	each(s, rep, func(p *rowParser) bool {
		l := model.RecipeLine{
			ID:             p.optID("ID Escandallo"),
			DishID:         p.id("ID Plato"),
			DishName:       p.str("Nombre Plato"),
			IngredientID:   p.id("ID Ingrediente"),
			IngredientName: p.str("Nombre Ingrediente"),
			Quantity:       p.dec("Cantidad"),
			Unit:           p.str("Unidad"),
			UnitCost:       p.dec("Coste Unitario"),
			LineCost:       p.dec("Coste Total"),
			PctOfDish:      p.dec("% del Plato"),
			Supplier:       p.str("Proveedor Actual"),
			UpdatedAt:      p.date("Última Actualización"),
		}
		if p.err != nil {
			return false
		}
		out = append(out, l)
		return true
	})
	return out
}

func readPurchases(s *sheet, rep *Report) []model.PurchaseLine {
	var out []model.PurchaseLine
	each(s, rep, func(p *rowParser) bool {
		pl := model.PurchaseLine{
			ClientID:       p.optID("ID Cliente"),
			IngredientID:   p.id("ID Ingrediente"),
			IngredientName: p.str("Nombre Ingrediente"),
			UnitPrice:      p.dec("Precio Unitario"),
			Quantity:       p.dec("Cantidad"),
		}
		if p.err != nil {
			return false
		}
		out = append(out, pl)
		return true
	})
	return out
}

// reconcile makes the dataset satisfy the store's foreign keys.
func reconcile(ds *model.Dataset, rep *Report) {
	clients := make(map[int64]bool, len(ds.Clients))
	for _, c := range ds.Clients {
		clients[c.ID] = true
	}
	placeholders := make(map[int64]string)
	need := func(id int64, name string) {
		if clients[id] {
			return
		}
		if _, ok := placeholders[id]; !ok || placeholders[id] == "" {
			placeholders[id] = name
		}
	}
	for _, cp := range ds.Prices {
		need(cp.ClientID, cp.ClientName)
	}
	for _, d := range ds.Dishes {
		need(d.ClientID, d.ClientName)
	}

	ids := make([]int64, 0, len(placeholders))
	for id := range placeholders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		name := placeholders[id]
		if name == "" {
			name = fmt.Sprintf("Cliente %d", id)
		}
		ds.Clients = append(ds.Clients, model.Client{ID: id, Name: name, Active: true})
	}
	rep.Placeholders = len(ids)

	ingredients := make(map[int64]bool, len(ds.Ingredients))
	for _, ing := range ds.Ingredients {
		ingredients[ing.ID] = true
	}
	type pair struct{ client, ingredient int64 }
	seen := make(map[pair]bool, len(ds.Prices))
	prices := ds.Prices[:0]
	for _, cp := range ds.Prices {
		k := pair{cp.ClientID, cp.IngredientID}
		switch {
		case !ingredients[cp.IngredientID]:
			rep.skip(SheetPrices, 0, "ID Ingrediente", fmt.Sprintf("unknown ingredient %d", cp.IngredientID))
		case seen[k]:
			// A client has one price per ingredient; the first row wins.
			rep.skip(SheetPrices, 0, "ID Ingrediente",
				fmt.Sprintf("duplicate price for client %d, ingredient %d", cp.ClientID, cp.IngredientID))
		default:
			seen[k] = true
			prices = append(prices, cp)
		}
	}
	ds.Prices = prices

	dishes := make(map[int64]bool, len(ds.Dishes))
	for _, d := range ds.Dishes {
		dishes[d.ID] = true
	}
	lines := ds.Lines[:0]
	for _, l := range ds.Lines {
		switch {
		case !dishes[l.DishID]:
			rep.skip(SheetLines, 0, "ID Plato", fmt.Sprintf("unknown dish %d", l.DishID))
		case !ingredients[l.IngredientID]:
			rep.skip(SheetLines, 0, "ID Ingrediente", fmt.Sprintf("unknown ingredient %d", l.IngredientID))
		default:
			lines = append(lines, l)
		}
	}
	ds.Lines = lines
}
