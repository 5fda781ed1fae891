package configs

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr bool
	}{
		{"development keeps the default", "development", "", false},
		{"production with the default", "production", "", true},
		{"production with an empty secret", "production", "<empty>", true},
		{"production with a real secret", "production", "s3cr3t-from-vault", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("app.env", tt.env)
			switch tt.secret {
			case "":
			case "<empty>":
				v.Set("jwt.secret", "")
			default:
				v.Set("jwt.secret", tt.secret)
			}

			err := NewConfig(v).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureJwtSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}
