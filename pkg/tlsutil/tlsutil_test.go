package tlsutil_test

import (
	"crypto/tls"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/tlsutil"
)

func TestGenerateDevCertificates_LoadsAsServerConfig(t *testing.T) {
	dir := t.TempDir()

	certs, err := tlsutil.GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "server.pem"), certs.CertFile)

	cfg, err := tlsutil.ServerConfig(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	creds, err := tlsutil.ServerCredentials(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	client, err := tlsutil.ClientConfig(certs.CAFile)
	require.NoError(t, err)
	assert.NotNil(t, client.RootCAs)
}

func TestServerConfig_MissingFiles(t *testing.T) {
	_, err := tlsutil.ServerConfig("missing.pem", "missing-key.pem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load server key pair")
}

func TestClientConfig_RejectsNonPEM(t *testing.T) {
	dir := t.TempDir()
	certs, err := tlsutil.GenerateDevCertificates([]string{"localhost"}, dir)
	require.NoError(t, err)

	// A private key is not a certificate.
	_, err = tlsutil.ClientConfig(certs.KeyFile)
	require.Error(t, err)
}
