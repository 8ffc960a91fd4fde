package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS clients (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    city            TEXT NOT NULL DEFAULT '',
    service         TEXT NOT NULL DEFAULT '',
    mrr             TEXT NOT NULL DEFAULT '0',
    active          INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS ingredients (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    category        TEXT NOT NULL DEFAULT '',
    unit            TEXT NOT NULL DEFAULT '',
    market_price    TEXT NOT NULL,
    seasonality     TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL,
    version         INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS client_prices (
    id              INTEGER PRIMARY KEY,
    client_id       INTEGER NOT NULL REFERENCES clients(id),
    ingredient_id   INTEGER NOT NULL REFERENCES ingredients(id),
    price           TEXT NOT NULL,
    unit            TEXT NOT NULL DEFAULT '',
    reference_price TEXT NOT NULL,
    deviation_pct   TEXT NOT NULL,
    supplier        TEXT NOT NULL DEFAULT '',
    notes           TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL,
    version         INTEGER NOT NULL DEFAULT 1,
    UNIQUE (client_id, ingredient_id)
);

CREATE TABLE IF NOT EXISTS dishes (
    id                INTEGER PRIMARY KEY,
    client_id         INTEGER NOT NULL REFERENCES clients(id),
    name              TEXT NOT NULL,
    category          TEXT NOT NULL DEFAULT '',
    sale_price        TEXT NOT NULL,
    total_cost        TEXT NOT NULL DEFAULT '0',
    margin_amount     TEXT NOT NULL DEFAULT '0',
    margin_pct        TEXT NOT NULL DEFAULT '0',
    food_cost_pct     TEXT NOT NULL DEFAULT '0',
    monthly_volume    INTEGER NOT NULL DEFAULT 0,
    classification    TEXT NOT NULL DEFAULT '',
    recommended_price TEXT NOT NULL DEFAULT '0',
    active            INTEGER NOT NULL DEFAULT 1,
    notes             TEXT NOT NULL DEFAULT '',
    version           INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS recipe_lines (
    id              INTEGER PRIMARY KEY,
    dish_id         INTEGER NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
    ingredient_id   INTEGER NOT NULL REFERENCES ingredients(id),
    quantity        TEXT NOT NULL,
    unit            TEXT NOT NULL DEFAULT '',
    unit_cost       TEXT NOT NULL,
    line_cost       TEXT NOT NULL,
    pct_of_dish     TEXT NOT NULL DEFAULT '0',
    supplier        TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL,
    version         INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS purchase_lines (
    id              INTEGER PRIMARY KEY,
    client_id       INTEGER NOT NULL DEFAULT 0,
    ingredient_id   INTEGER NOT NULL,
    ingredient_name TEXT NOT NULL DEFAULT '',
    quantity        TEXT NOT NULL,
    unit_price      TEXT NOT NULL,
    purchased_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_dishes_client ON dishes(client_id);
CREATE INDEX IF NOT EXISTS idx_lines_dish ON recipe_lines(dish_id);
CREATE INDEX IF NOT EXISTS idx_prices_client ON client_prices(client_id);
`
