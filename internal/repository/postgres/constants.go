package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errContentNotFound = "content not found"
	errUserNotFound    = "user not found"
	errAPIKeyNotFound  = "API key not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateContentFmt     = "failed to create content: %w"
	errFailedGetContentFmt        = "failed to get content: %w"
	errFailedListContentsFmt      = "failed to list contents: %w"
	errFailedScanContentFmt       = "failed to scan content: %w"
	errFailedUpdateContentFmt     = "failed to update content: %w"
	errFailedDeleteContentFmt     = "failed to delete content: %w"
	errFailedEncodeContentJSONFmt = "failed to encode content json column: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"

	errFailedCreateAPIKeyFmt   = "failed to create API key: %w"
	errFailedGetAPIKeyFmt      = "failed to get API key: %w"
	errFailedListAPIKeysFmt    = "failed to list API keys: %w"
	errFailedScanAPIKeyFmt     = "failed to scan API key: %w"
	errFailedUpdateLastUsedFmt = "failed to update last used: %w"
	errFailedRevokeAPIKeyFmt   = "failed to revoke API key: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }

	errFailedCreateContent     = func(err error) error { return fmt.Errorf(errFailedCreateContentFmt, err) }
	errFailedGetContent        = func(err error) error { return fmt.Errorf(errFailedGetContentFmt, err) }
	errFailedListContents      = func(err error) error { return fmt.Errorf(errFailedListContentsFmt, err) }
	errFailedScanContent       = func(err error) error { return fmt.Errorf(errFailedScanContentFmt, err) }
	errFailedUpdateContent     = func(err error) error { return fmt.Errorf(errFailedUpdateContentFmt, err) }
	errFailedDeleteContent     = func(err error) error { return fmt.Errorf(errFailedDeleteContentFmt, err) }
	errFailedEncodeContentJSON = func(err error) error { return fmt.Errorf(errFailedEncodeContentJSONFmt, err) }

	errFailedCreateUser = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser    = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }

	errFailedCreateAPIKey   = func(err error) error { return fmt.Errorf(errFailedCreateAPIKeyFmt, err) }
	errFailedGetAPIKey      = func(err error) error { return fmt.Errorf(errFailedGetAPIKeyFmt, err) }
	errFailedListAPIKeys    = func(err error) error { return fmt.Errorf(errFailedListAPIKeysFmt, err) }
	errFailedScanAPIKey     = func(err error) error { return fmt.Errorf(errFailedScanAPIKeyFmt, err) }
	errFailedUpdateLastUsed = func(err error) error { return fmt.Errorf(errFailedUpdateLastUsedFmt, err) }
	errFailedRevokeAPIKey   = func(err error) error { return fmt.Errorf(errFailedRevokeAPIKeyFmt, err) }
)
