package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCertificate(t *testing.T, certFile, keyFile string) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(42),
		Subject:      pkix.Name{Organization: []string{"HoldMyIDBack"}, CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	certOut, err := os.Create(certFile)
	require.NoError(t, err)
	defer certOut.Close()

	err = pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	require.NoError(t, err)

	keyOut, err := os.Create(keyFile)
	require.NoError(t, err)
	defer keyOut.Close()

	privKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)

	err = pem.Encode(keyOut, &pem.Block{Type: "PRIVATE KEY", Bytes: privKeyBytes})
	require.NoError(t, err)
}

func TestNewSecurityLayer(t *testing.T) {
	assert.IsType(t, &TLSListener{}, NewSecurityLayer(true, "cert.pem", "key.pem"))
	assert.IsType(t, &PlainListener{}, NewSecurityLayer(false, "cert.pem", "key.pem"))
}

func TestTLSListener_Listen(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	createTestCertificate(t, certFile, keyFile)

	t.Run("success", func(t *testing.T) {
		ln, err := NewTLSListener(certFile, keyFile).Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		assert.NotEmpty(t, ln.Addr().String())
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := NewTLSListener(certFile, keyFile).Listen("tcp", "invalid-address")
		require.Error(t, err)
	})

	t.Run("missing certificate", func(t *testing.T) {
		_, err := NewTLSListener(filepath.Join(dir, "absent.pem"), keyFile).Listen("tcp", "127.0.0.1:0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load TLS certificate")
	})
}

func TestPlainListener_Listen(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ln, err := NewPlainListener().Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		_, ok := ln.(*net.TCPListener)
		assert.True(t, ok)
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := NewPlainListener().Listen("tcp", "invalid-address")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen on invalid-address")
	})
}
