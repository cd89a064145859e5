// cmd/seeduser/main.go — Crea/actualiza usuario de demo.
// Uso: go run cmd/seeduser/main.go [username] [password]
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

func main() {
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "data/taller.json"
	}
	username := "mecanico"
	password := "1234"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := store.Open(dataFile)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}

	existing := db.Find(store.Users, map[string]any{"username": username})
	if len(existing) > 0 {
		err = db.Update(store.Users, store.DocID(existing[0]), map[string]any{
			"password_hash": string(hash),
		})
	} else {
		_, err = db.Insert(store.Users, &model.User{
			Username:     username,
			FullName:     "Mecanico Demo",
			Role:         model.RolMecanico,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		})
	}
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}
	fmt.Printf("✅ Usuario '%s' creado/actualizado con password '%s'\n", username, password)
}
