package main

import (
	"context"
	"crypto/cipher"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	mdb "github.com/liondandelion/larets/internal/db"
	mhttp "github.com/liondandelion/larets/internal/http"
	mw "github.com/liondandelion/larets/internal/middleware"
	"github.com/liondandelion/larets/internal/rijn"
)

var assetsDirPath = "web"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Main: unable to load .env: %v\n", err)
	}

	dbPool, err := pgxpool.New(context.Background(), os.Getenv("POSTGRES_URL"))
	if err != nil {
		log.Fatalf("Main: unable to create connection pool: %v\n", err)
	}
	defer dbPool.Close()

	sessionManager := scs.New()
	sessionManager.Store = pgxstore.New(dbPool)
	sessionManager.Lifetime = 12 * time.Hour

	db := mdb.Create(dbPool, sessionManager)
	err = db.EnsureSchema(context.Background())
	if err != nil {
		log.Fatalf("Main: unable to ensure schema: %v\n", err)
	}

	gcm := masterGCM(os.Getenv("LARETS_KEY_PATH"))

	r := chi.NewRouter()
	r.Use(chimw.Logger)

	assetsDir := http.Dir(assetsDirPath)
	mhttp.FileServer(r, "/assets", assetsDir)

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(mw.EnsureUserExists(db))
		r.Use(mw.SecureHeaders(db))

		r.Get("/", mhttp.Home(db).ServeHTTP)
		r.Get("/register", mhttp.Register(db).ServeHTTP)
		r.Get("/login", mhttp.Login(db).ServeHTTP)
		r.Get("/logout", mhttp.Logout(db).ServeHTTP)

		r.Post("/register", mhttp.RegisterPost(db).ServeHTTP)
		r.Post("/register/exists", mhttp.RegisterExists(db).ServeHTTP)
		r.Post("/login", mhttp.LoginPost(db).ServeHTTP)
		r.Post("/login/otp", mhttp.LoginOTP(db, gcm).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(db))

			r.Get("/user", mhttp.User(db).ServeHTTP)
			r.Get("/user/password", mhttp.PasswordChange(db).ServeHTTP)
			r.Post("/user/password", mhttp.PasswordChangePost(db).ServeHTTP)
			r.Get("/user/otp/enable", mhttp.OTPEnable(db, gcm).ServeHTTP)
			r.Post("/user/otp/enable", mhttp.OTPEnablePost(db, gcm).ServeHTTP)
			r.Get("/user/otp/disable", mhttp.OTPDisable(db).ServeHTTP)
			r.Post("/user/otp/disable", mhttp.OTPDisablePost(db, gcm).ServeHTTP)

			r.Get("/secret/new", mhttp.SecretNew(db).ServeHTTP)
			r.Post("/secret/new", mhttp.SecretCreate(db, gcm).ServeHTTP)
			r.Get("/secret/{name}", mhttp.SecretShow(db, gcm).ServeHTTP)
			r.Delete("/secret/{name}", mhttp.SecretDelete(db).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(mw.Admin(db))

				r.Get("/userstable", mhttp.UsersTable(db).ServeHTTP)
			})
		})
	})

	addr := os.Getenv("LARETS_ADDR")
	if addr == "" {
		addr = ":3001"
	}
	http.ListenAndServe(addr, r)
}

// masterGCM reads the vault master key and builds the AEAD every secret
// is sealed under.
func masterGCM(path string) cipher.AEAD {
	key, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Main: unable to read master key: %v\n", err)
	}

	block, err := rijn.NewCipher(key)
	if err != nil {
		log.Fatalf("Main: unable to create cipher: %v\n", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		log.Fatalf("Main: unable to create GCM: %v\n", err)
	}
	return gcm
}
