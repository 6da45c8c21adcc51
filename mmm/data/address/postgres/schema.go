package postgres

// Schema creates the derived address table
const Schema = `
	CREATE TABLE IF NOT EXISTS mmm__core_derivedaddress (
		id SERIAL NOT NULL PRIMARY KEY,

		address TEXT NOT NULL,
		bump SMALLINT NOT NULL CHECK (bump >= 0 AND bump <= 255),
		program TEXT NOT NULL,
		kind SMALLINT NOT NULL,

		owner TEXT NOT NULL DEFAULT '',
		uuid TEXT NOT NULL DEFAULT '',
		pool TEXT NOT NULL DEFAULT '',
		asset_mint TEXT NOT NULL DEFAULT '',

		created_at TIMESTAMP WITH TIME ZONE NOT NULL,

		CONSTRAINT mmm__core_derivedaddress__uniq__address UNIQUE (address)
	);

	CREATE INDEX IF NOT EXISTS mmm__core_derivedaddress__idx__pool ON mmm__core_derivedaddress (pool);
`
