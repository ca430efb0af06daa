// Package storage хранит записи пользователей в sqlite.
//
// Репозиторий — read-modify-write без блокировок: две почти одновременные
// мутации одной записи (например, правка админом наперегонки с плановой
// отправкой) могут потерять одно из обновлений. Это известная и принятая
// гонка при однопроцессной работе; интерфейс Get/Put/All оставлен швом,
// за которым позже можно добавить блокировку, не трогая вызывающий код.
package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"daily-practice-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

const userColumns = `chat_id, username, first_name, subscribed, practice_mode,
    current_day, last_morning_sent, last_evening_sent, stage, email,
    active_test, pending_email, tests_taken, created_at, last_interaction`

// Get возвращает запись пользователя или (nil, nil), если её нет.
func (d *DB) Get(chatID int64) (*models.UserRecord, error) {
	row := d.QueryRow(`SELECT `+userColumns+` FROM users WHERE chat_id=?`, chatID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// Put целиком записывает запись пользователя (upsert по chat_id).
func (d *DB) Put(u *models.UserRecord) error {
	activeTest, err := marshalNullable(u.ActiveTest)
	if err != nil {
		return fmt.Errorf("marshal active_test: %w", err)
	}
	pendingEmail, err := marshalNullable(u.PendingEmail)
	if err != nil {
		return fmt.Errorf("marshal pending_email: %w", err)
	}
	testsTaken := u.TestsTaken
	if testsTaken == nil {
		testsTaken = map[string]models.TestTaken{}
	}
	tt, err := json.Marshal(testsTaken)
	if err != nil {
		return fmt.Errorf("marshal tests_taken: %w", err)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.LastInteraction = time.Now().UTC()

	_, err = d.Exec(`
        INSERT INTO users (`+userColumns+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(chat_id) DO UPDATE SET
            username=excluded.username,
            first_name=excluded.first_name,
            subscribed=excluded.subscribed,
            practice_mode=excluded.practice_mode,
            current_day=excluded.current_day,
            last_morning_sent=excluded.last_morning_sent,
            last_evening_sent=excluded.last_evening_sent,
            stage=excluded.stage,
            email=excluded.email,
            active_test=excluded.active_test,
            pending_email=excluded.pending_email,
            tests_taken=excluded.tests_taken,
            last_interaction=excluded.last_interaction
    `, u.ChatID, u.Username, u.FirstName, boolToInt(u.Subscribed), string(u.PracticeMode),
		u.CurrentDay, u.LastMorningSent, u.LastEveningSent, u.Stage.String(), u.Email,
		activeTest, pendingEmail, string(tt), u.CreatedAt.Unix(), u.LastInteraction.Unix())
	return err
}

// All возвращает все записи.
func (d *DB) All() ([]models.UserRecord, error) {
	return d.list(`SELECT ` + userColumns + ` FROM users`)
}

// AllSubscribed возвращает пользователей с активной подпиской и рабочим
// режимом практик — их планировщик пересобирает при старте процесса.
func (d *DB) AllSubscribed() ([]models.UserRecord, error) {
	return d.list(`SELECT ` + userColumns + ` FROM users
        WHERE subscribed=1 AND practice_mode IN ('dual','morning_only','extended')`)
}

func (d *DB) list(query string) ([]models.UserRecord, error) {
	rows, err := d.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []models.UserRecord
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.UserRecord, error) {
	var (
		u                        models.UserRecord
		subscribed               int
		mode, stage, testsTaken  string
		activeTest, pendingEmail sql.NullString
		createdAt, lastSeen      int64
	)
	err := s.Scan(&u.ChatID, &u.Username, &u.FirstName, &subscribed, &mode,
		&u.CurrentDay, &u.LastMorningSent, &u.LastEveningSent, &stage, &u.Email,
		&activeTest, &pendingEmail, &testsTaken, &createdAt, &lastSeen)
	if err != nil {
		return nil, err
	}
	u.Subscribed = subscribed == 1
	u.PracticeMode = models.PracticeMode(mode)
	u.Stage = models.ParseStage(stage)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.LastInteraction = time.Unix(lastSeen, 0).UTC()
	if activeTest.Valid && activeTest.String != "" {
		var at models.ActiveTest
		if err := json.Unmarshal([]byte(activeTest.String), &at); err != nil {
			return nil, fmt.Errorf("unmarshal active_test for %d: %w", u.ChatID, err)
		}
		u.ActiveTest = &at
	}
	if pendingEmail.Valid && pendingEmail.String != "" {
		var pe models.PendingEmail
		if err := json.Unmarshal([]byte(pendingEmail.String), &pe); err != nil {
			return nil, fmt.Errorf("unmarshal pending_email for %d: %w", u.ChatID, err)
		}
		u.PendingEmail = &pe
	}
	u.TestsTaken = map[string]models.TestTaken{}
	if testsTaken != "" {
		if err := json.Unmarshal([]byte(testsTaken), &u.TestsTaken); err != nil {
			return nil, fmt.Errorf("unmarshal tests_taken for %d: %w", u.ChatID, err)
		}
	}
	return &u, nil
}

func marshalNullable(v any) (sql.NullString, error) {
	switch x := v.(type) {
	case *models.ActiveTest:
		if x == nil {
			return sql.NullString{}, nil
		}
	case *models.PendingEmail:
		if x == nil {
			return sql.NullString{}, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
