package main

import (
	"context"
	"flag"
	"fmt"

	"proryx/internal/account"
	"proryx/internal/config"
	"proryx/internal/shared/apperror"
	"proryx/internal/shared/connection"
	"proryx/internal/tenancy"
	"proryx/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the fixed role and permission catalogue, and optionally
// onboards the first account when the onboarding flags are set.
//
//	go run ./cmd/seed
//	go run ./cmd/seed -account "Acme Estates" -company "Acme Dubai" \
//	    -email admin@acme.test -password changeme123 -name "Ada Admin"
func main() {
	accountName := flag.String("account", "", "account name to onboard (optional)")
	companyName := flag.String("company", "", "first company name")
	adminEmail := flag.String("email", "", "admin user email")
	adminPassword := flag.String("password", "", "admin user password")
	adminFullName := flag.String("name", "", "admin user full name")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("failed to load config", zap.Error(err))
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectionRetries,
	)
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}

	if err := seedCatalogue(gormDB); err != nil {
		zap.L().Fatal("failed to seed role catalogue", zap.Error(err))
	}
	zap.L().Info("role and permission catalogue seeded")

	if *accountName == "" {
		return
	}

	seqRepo := tenancy.NewSequenceRepository(gormDB)
	accountService := account.NewService(
		gormDB,
		account.NewRepository(gormDB),
		user.NewRepository(gormDB, seqRepo),
	)

	resp, err := accountService.Onboard(context.Background(), account.OnboardRequest{
		AccountName:   *accountName,
		CompanyName:   *companyName,
		AdminEmail:    *adminEmail,
		AdminPassword: *adminPassword,
		AdminFullName: *adminFullName,
	})
	if err != nil {
		zap.L().Fatal("onboarding failed", zap.Error(err))
	}

	zap.L().Info("account onboarded",
		zap.String("account_uuid", resp.Account.UUID),
		zap.String("company_uuid", resp.Company.UUID),
		zap.String("admin_uuid", resp.AdminUUID),
	)
}

type roleSeed struct {
	Slug        string
	Name        string
	Description string
}

type permissionSeed struct {
	Resource string
	Action   string
	Label    string
	Category string
}

var roleCatalogue = []roleSeed{
	{Slug: user.RoleAdmin, Name: "Administrator", Description: "Full access to every resource in the company"},
	{Slug: user.RoleManager, Name: "Property Manager", Description: "Manages the portfolio, renters, and vendors"},
	{Slug: user.RoleLeasing, Name: "Leasing Agent", Description: "Handles renters and their KYC documents"},
	{Slug: user.RoleOperations, Name: "Operations", Description: "Handles vendors and property maintenance data"},
	{Slug: user.RoleFinance, Name: "Finance", Description: "Read access for reconciliation and reporting"},
	{Slug: user.RoleViewer, Name: "Viewer", Description: "Read-only access"},
}

var permissionCatalogue = []permissionSeed{
	{Resource: "company", Action: "manage", Label: "Manage companies", Category: "account"},
	{Resource: "user", Action: "read", Label: "View users", Category: "account"},
	{Resource: "user", Action: "manage", Label: "Manage users", Category: "account"},
	{Resource: "role", Action: "read", Label: "View roles", Category: "account"},
	{Resource: "role", Action: "manage", Label: "Manage role permissions", Category: "account"},

	{Resource: "property", Action: "read", Label: "View properties and units", Category: "portfolio"},
	{Resource: "property", Action: "write", Label: "Edit properties and units", Category: "portfolio"},
	{Resource: "property", Action: "manage", Label: "Delete properties and units", Category: "portfolio"},

	{Resource: "renter", Action: "read", Label: "View renters", Category: "renters"},
	{Resource: "renter", Action: "write", Label: "Edit renters and documents", Category: "renters"},
	{Resource: "renter", Action: "manage", Label: "Blacklist renters, verify KYC", Category: "renters"},

	{Resource: "vendor", Action: "read", Label: "View vendors", Category: "vendors"},
	{Resource: "vendor", Action: "write", Label: "Edit vendors", Category: "vendors"},
	{Resource: "vendor", Action: "manage", Label: "Delete vendors", Category: "vendors"},
}

// rolePermissions maps each role slug to its resource:action grants.
// Admin is granted everything and is omitted here.
var rolePermissions = map[string][]string{
	user.RoleManager: {
		"company:manage",
		"user:read",
		"property:read", "property:write", "property:manage",
		"renter:read", "renter:write", "renter:manage",
		"vendor:read", "vendor:write", "vendor:manage",
	},
	user.RoleLeasing: {
		"property:read",
		"renter:read", "renter:write",
	},
	user.RoleOperations: {
		"property:read", "property:write",
		"vendor:read", "vendor:write",
	},
	user.RoleFinance: {
		"property:read",
		"renter:read",
		"vendor:read",
	},
	user.RoleViewer: {
		"user:read",
		"property:read",
		"renter:read",
		"vendor:read",
	},
}

type roleRow struct {
	ID          int64 `gorm:"primaryKey"`
	Slug        string
	Name        string
	Description string
}

func (roleRow) TableName() string { return "roles" }

type permissionRow struct {
	ID       int64 `gorm:"primaryKey"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (permissionRow) TableName() string { return "permissions" }

type rolePermissionRow struct {
	RoleID       int64
	PermissionID int64
}

func (rolePermissionRow) TableName() string { return "role_permissions" }

// seedCatalogue upserts the catalogue so the binary can run on every
// deploy without clobbering operator edits to role grants.
func seedCatalogue(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range roleCatalogue {
			row := roleRow{Slug: r.Slug, Name: r.Name, Description: r.Description}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		for _, p := range permissionCatalogue {
			row := permissionRow{Resource: p.Resource, Action: p.Action, Label: p.Label, Category: p.Category}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "resource"}, {Name: "action"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		var roles []roleRow
		if err := tx.Find(&roles).Error; err != nil {
			return err
		}
		roleID := make(map[string]int64, len(roles))
		for _, r := range roles {
			roleID[r.Slug] = r.ID
		}

		var perms []permissionRow
		if err := tx.Find(&perms).Error; err != nil {
			return err
		}
		permID := make(map[string]int64, len(perms))
		for _, p := range perms {
			permID[p.Resource+":"+p.Action] = p.ID
		}

		grant := func(slug string, keys []string) error {
			for _, key := range keys {
				pid, ok := permID[key]
				if !ok {
					return fmt.Errorf("unknown permission %q for role %q", key, slug)
				}
				row := rolePermissionRow{RoleID: roleID[slug], PermissionID: pid}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "role_id"}, {Name: "permission_id"}},
					DoNothing: true,
				}).Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		}

		adminKeys := make([]string, 0, len(permissionCatalogue))
		for _, p := range permissionCatalogue {
			adminKeys = append(adminKeys, p.Resource+":"+p.Action)
		}
		if err := grant(user.RoleAdmin, adminKeys); err != nil {
			return err
		}

		for slug, keys := range rolePermissions {
			if err := grant(slug, keys); err != nil {
				return err
			}
		}
		return nil
	})
}
