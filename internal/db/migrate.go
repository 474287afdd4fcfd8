package db

import (
	"context"
	"database/sql"
)

const principalMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS admins (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    role text NOT NULL DEFAULT 'reviewer',
    areas text NOT NULL DEFAULT '[]',
    status text NOT NULL DEFAULT 'active',
    last_login timestamptz,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT admins_role_check
        CHECK (role IN ('admin', 'area_admin', 'reviewer'))
);

CREATE UNIQUE INDEX IF NOT EXISTS admins_email_lower_unique
ON admins (LOWER(email));

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    first_name text NOT NULL DEFAULT '',
    last_name text NOT NULL DEFAULT '',
    department text NOT NULL DEFAULT '',
    status text NOT NULL DEFAULT 'active',
    email_verified boolean NOT NULL DEFAULT false,
    last_login timestamptz,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));
`

// RunPrincipalMigration creates the admin and client tables. The unique
// email indexes are load-bearing: they arbitrate concurrent first logins
// for the same address.
func RunPrincipalMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, principalMigration)
	return err
}
