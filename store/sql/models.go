package sqlstore

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type testRecord struct {
	bun.BaseModel `bun:"table:tests,alias:t"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull"`
	ProjectID  *string   `bun:"project_id"`
	WebhookURL string    `bun:"webhook_url,notnull"`
	Scheduled  bool      `bun:"scheduled,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type testResultRecord struct {
	bun.BaseModel `bun:"table:test_results,alias:tr"`

	ID        string          `bun:"id,pk"`
	TestID    string          `bun:"test_id,notnull"`
	Status    string          `bun:"status,notnull"`
	Payload   json.RawMessage `bun:"payload,type:jsonb"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type projectRecord struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	UserID    string    `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type userRecord struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk"`
	Username     string    `bun:"username,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	APIKey       string    `bun:"api_key,notnull,unique"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
