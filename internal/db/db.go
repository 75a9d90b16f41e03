package db

import (
	"context"
	"encoding/gob"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool    *pgxpool.Pool
	session *scs.SessionManager
}

type UserSessionData struct {
	Username                                          string
	IsAuthenticated, IsAdmin, IsOTPEnabled, IsBlocked bool
}

type User struct {
	Username     string
	PasswordHash []byte
	IsAdmin      bool
	IsBlocked    bool
}

// Secret is one sealed vault entry. Data holds the GCM nonce followed by
// the ciphertext and tag; the db never sees a plaintext secret.
type Secret struct {
	Username  string
	Name      string
	Data      []byte
	CreatedAt time.Time
}

func Create(dbPool *pgxpool.Pool, sessionManager *scs.SessionManager) DB {
	gob.Register(UserSessionData{})
	return DB{dbPool, sessionManager}
}

// EnsureSchema creates the tables the service needs if the database does
// not have them yet.
func (db DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		create table if not exists users (
			username text primary key,
			password_hash bytea not null,
			is_admin boolean not null default false,
			is_blocked boolean not null default false
		);
		create table if not exists otp (
			username text primary key references users (username) on delete cascade,
			otp bytea not null
		);
		create table if not exists secrets (
			username text not null references users (username) on delete cascade,
			name text not null,
			data bytea not null,
			created_at timestamptz not null default now(),
			primary key (username, name)
		);
		create table if not exists sessions (
			token text primary key,
			data bytea not null,
			expiry timestamptz not null
		);
		create index if not exists sessions_expiry_idx on sessions (expiry);
	`)
	return err
}

func (db DB) UserSessionDataCreateIfDoesNotExist(ctx context.Context) {
	if !db.session.Exists(ctx, "UserSessionData") {
		db.session.Put(ctx, "UserSessionData", UserSessionData{})
	}
}

func (db DB) UserSessionDataGet(ctx context.Context) UserSessionData {
	data := db.session.Get(ctx, "UserSessionData").(UserSessionData)
	return data
}

func (db DB) UserSessionDataSet(data UserSessionData, ctx context.Context) {
	db.session.Put(ctx, "UserSessionData", data)
}

func (db DB) UserSessionDataDestroy(ctx context.Context) {
	db.session.Destroy(ctx)
}

func (db DB) UserTokenRenew(ctx context.Context) {
	db.session.RenewToken(ctx)
}

func (db DB) UserExists(username string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(context.Background(), "select exists (select 1 from users where username = $1)", username).Scan(&exists)
	return exists, err
}

func (db DB) UserIsAdmin(username string) (bool, error) {
	var isAdmin bool
	err := db.pool.QueryRow(context.Background(), "select is_admin from users where username = $1", username).Scan(&isAdmin)
	return isAdmin, err
}

func (db DB) UserIsBlocked(username string) (bool, error) {
	var isBlocked bool
	err := db.pool.QueryRow(context.Background(), "select is_blocked from users where username = $1", username).Scan(&isBlocked)
	return isBlocked, err
}

func (db DB) UserIsOTPEnabled(username string) (bool, error) {
	var isOTPEnabled bool
	err := db.pool.QueryRow(context.Background(), "select exists (select 1 from otp where username = $1)", username).Scan(&isOTPEnabled)
	return isOTPEnabled, err
}

func (db DB) UserInsert(username string, passwordHash []byte, isAdmin bool) error {
	_, err := db.pool.Exec(context.Background(), "insert into users (username, password_hash, is_admin) values ($1, $2, $3)", username, passwordHash, isAdmin)
	return err
}

func (db DB) UserPasswordHashGet(username string) ([]byte, error) {
	var passwordHash []byte
	err := db.pool.QueryRow(context.Background(), "select password_hash from users where username = $1", username).Scan(&passwordHash)
	return passwordHash, err
}

func (db DB) UserPasswordHashSet(username string, newHash []byte) error {
	_, err := db.pool.Exec(context.Background(), "update users set password_hash = $1 where username = $2", newHash, username)
	return err
}

func (db DB) UserTableGet() ([]User, error) {
	rows, _ := db.pool.Query(context.Background(), "select username, password_hash, is_admin, is_blocked from users;")
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[User])
	return users, err
}

func (db DB) SessionOTPSecretPut(secret []byte, ctx context.Context) {
	db.session.Put(ctx, "otpSecret", secret)
}

func (db DB) SessionOTPSecretGet(ctx context.Context) []byte {
	secret := db.session.GetBytes(ctx, "otpSecret")
	return secret
}

func (db DB) SessionOTPSecretRemove(ctx context.Context) {
	db.session.Remove(ctx, "otpSecret")
}

func (db DB) UserOTPSecretInsert(username string, otpSecret []byte) error {
	_, err := db.pool.Exec(context.Background(), "insert into otp (username, otp) values ($1, $2)", username, otpSecret)
	return err
}

func (db DB) UserOTPSecretGet(username string) ([]byte, error) {
	var otpSecret []byte
	err := db.pool.QueryRow(context.Background(), "select otp from otp where username = $1", username).Scan(&otpSecret)
	return otpSecret, err
}

func (db DB) UserOTPSecretDelete(username string) error {
	_, err := db.pool.Exec(context.Background(), "delete from otp where username = $1", username)
	return err
}

func (db DB) SecretInsert(username, name string, data []byte) error {
	_, err := db.pool.Exec(context.Background(), "insert into secrets (username, name, data) values ($1, $2, $3)", username, name, data)
	return err
}

func (db DB) SecretGet(username, name string) ([]byte, error) {
	var data []byte
	err := db.pool.QueryRow(context.Background(), "select data from secrets where username = $1 and name = $2", username, name).Scan(&data)
	return data, err
}

func (db DB) SecretList(username string) ([]Secret, error) {
	rows, _ := db.pool.Query(context.Background(), "select username, name, data, created_at from secrets where username = $1 order by created_at", username)
	secrets, err := pgx.CollectRows(rows, pgx.RowToStructByName[Secret])
	return secrets, err
}

func (db DB) SecretDelete(username, name string) error {
	_, err := db.pool.Exec(context.Background(), "delete from secrets where username = $1 and name = $2", username, name)
	return err
}
