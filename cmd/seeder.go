package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the hierarchy catalog and an admin account",
	Long:  `Seed the database with the initial university hierarchy and a staff admin account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"student_parents", "student_banks", "student_academics", "student_contacts", "students",
				"employee_departments", "employee_banks", "employee_academics", "employee_contacts", "employees",
				"one_time_codes", "profiles", "accounts",
				"branches", "programs", "institutes", "universities",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedHierarchy(db)
		seedAdmin(db)
	},
}

type seedNode struct {
	code   string
	name   string
	parent string
}

func seedHierarchy(db *gorm.DB) {
	universities := []seedNode{
		{code: "EXU", name: "Example University"},
		{code: "TCU", name: "Tech University"},
	}
	institutes := []seedNode{
		{code: "ENG", name: "Engineering Institute", parent: "EXU"},
		{code: "MGT", name: "Management Institute", parent: "EXU"},
		{code: "TSAI", name: "Tech School of AI", parent: "TCU"},
	}
	programs := []seedNode{
		{code: "CS", name: "B.Tech in Computer Science", parent: "ENG"},
		{code: "MBA", name: "MBA in Marketing", parent: "MGT"},
		{code: "MAI", name: "M.Tech in AI", parent: "TSAI"},
	}
	branches := []seedNode{
		{code: "AI", name: "Artificial Intelligence", parent: "CS"},
		{code: "DS", name: "Data Science", parent: "CS"},
		{code: "DM", name: "Digital Marketing", parent: "MBA"},
		{code: "ML", name: "Machine Learning", parent: "MAI"},
	}

	for _, u := range universities {
		var exists int
		if err := db.Raw("SELECT 1 FROM universities WHERE code = ?", u.code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO universities (code, name) VALUES (?, ?)", u.code, u.name).Error; err != nil {
			log.Fatalf("failed to insert university %s: %v", u.code, err)
		}
	}

	for _, i := range institutes {
		var exists int
		if err := db.Raw("SELECT 1 FROM institutes WHERE code = ?", i.code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO institutes (code, name, university_id) SELECT ?, ?, id FROM universities WHERE code = ?",
			i.code, i.name, i.parent).Error; err != nil {
			log.Fatalf("failed to insert institute %s: %v", i.code, err)
		}
	}

	for _, p := range programs {
		var exists int
		if err := db.Raw("SELECT 1 FROM programs WHERE code = ?", p.code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO programs (code, name, institute_id) SELECT ?, ?, id FROM institutes WHERE code = ?",
			p.code, p.name, p.parent).Error; err != nil {
			log.Fatalf("failed to insert program %s: %v", p.code, err)
		}
	}

	for _, b := range branches {
		var exists int
		if err := db.Raw("SELECT 1 FROM branches WHERE code = ?", b.code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO branches (code, name, program_id) SELECT ?, ?, id FROM programs WHERE code = ?",
			b.code, b.name, b.parent).Error; err != nil {
			log.Fatalf("failed to insert branch %s: %v", b.code, err)
		}
	}

	fmt.Println("Seeded hierarchy catalog")
}

func seedAdmin(db *gorm.DB) {
	adminEmail := "admin@campushub.local"

	var exists int
	if err := db.Raw("SELECT 1 FROM accounts WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
		fmt.Println("admin account already exists")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err := db.Exec(
		"INSERT INTO accounts (username, email, role, is_active, is_staff, password_hash, last_login_at, created_at, updated_at) VALUES (?, ?, 'admin', true, true, ?, now(), now(), now())",
		"admin", adminEmail, string(hash)).Error; err != nil {
		log.Fatalf("failed to insert admin account: %v", err)
	}

	// the seeded admin skips the default-password dance
	if err := db.Exec(
		"INSERT INTO profiles (account_id, first_login, is_default_password, created_at, updated_at) SELECT id, false, false, now(), now() FROM accounts WHERE email = ?",
		adminEmail).Error; err != nil {
		log.Fatalf("failed to insert admin profile: %v", err)
	}

	fmt.Println("Seeded admin account:", adminEmail)
}
