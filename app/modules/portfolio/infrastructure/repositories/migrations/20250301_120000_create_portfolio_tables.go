package portfoliomigrations

import (
	"context"
	"fmt"

	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating portfolio tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*portfoliodb.User)(nil)).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*portfoliodb.Project)(nil)).
				IfNotExists().
				ForeignKey("(user_id) REFERENCES users (id) ON DELETE CASCADE").
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create projects table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*portfoliodb.Media)(nil)).
				IfNotExists().
				ForeignKey("(project_id) REFERENCES projects (id) ON DELETE CASCADE").
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create media table: %w", err)
			}

			if _, err := tx.NewCreateTable().
				Model((*portfoliodb.Link)(nil)).
				IfNotExists().
				ForeignKey("(user_id) REFERENCES users (id) ON DELETE CASCADE").
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create links table: %w", err)
			}

			// Project names are unique per owner regardless of case.
			if _, err := tx.NewCreateIndex().
				Model((*portfoliodb.Project)(nil)).
				Index("projects_user_name_key_idx").
				Unique().
				Column("user_id", "name_key").
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create projects name index: %w", err)
			}

			if _, err := tx.NewCreateIndex().
				Model((*portfoliodb.Media)(nil)).
				Index("media_project_id_idx").
				Column("project_id").
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create media project index: %w", err)
			}

			if _, err := tx.NewCreateIndex().
				Model((*portfoliodb.Link)(nil)).
				Index("links_user_id_idx").
				Column("user_id").
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create links user index: %w", err)
			}

			fmt.Println("Portfolio tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping portfolio tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, model := range []any{
				(*portfoliodb.Link)(nil),
				(*portfoliodb.Media)(nil),
				(*portfoliodb.Project)(nil),
				(*portfoliodb.User)(nil),
			} {
				if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop table: %w", err)
				}
			}
			fmt.Println("Portfolio tables dropped successfully!")
			return nil
		})
	})
}
