package dsql

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dsql/auth"
)

// loadCredentials resolves the AWS credential chain once at Init.
// The provider itself caches and refreshes as needed.
func (c *Client) loadCredentials(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Conf.Region))
	if err != nil {
		return fmt.Errorf("aws config load failed: %w", err)
	}
	c.creds = cfg.Credentials
	return nil
}

// generateAuthToken builds a fresh IAM auth token, used as the password for
// one connection attempt. The `admin` user needs the admin variant.
func (c *Client) generateAuthToken(ctx context.Context) (string, error) {
	var optFns []func(*auth.TokenOptions)
	if c.Conf.TokenExpirySec > 0 {
		optFns = append(optFns, func(o *auth.TokenOptions) {
			o.ExpiresIn = time.Duration(c.Conf.TokenExpirySec) * time.Second
		})
	}
	var (
		token string
		err   error
	)
	if c.Conf.User == defaultUser {
		token, err = auth.GenerateDBConnectAdminAuthToken(ctx, c.Conf.Host, c.Conf.Region, c.creds, optFns...)
	} else {
		token, err = auth.GenerateDbConnectAuthToken(ctx, c.Conf.Host, c.Conf.Region, c.creds, optFns...)
	}
	if err != nil {
		return "", fmt.Errorf("dsql auth token generation failed: %w", err)
	}
	return token, nil
}
