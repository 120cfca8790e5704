package otp_test

import (
	"strings"
	"testing"
	"time"

	"taskapp/pkg/otp"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// base32 of the ASCII secret "12345678901234567890" from RFC 6238 appendix B.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

type TotpEngineTestSuite struct {
	suite.Suite
	engine *otp.Engine
}

func (s *TotpEngineTestSuite) SetupTest() {
	s.engine = otp.NewEngine(otp.Config{
		Issuer: "Task Management",
		Digits: 6,
		Period: 30,
		Skew:   1,
	})
}

func TestTotpEngineTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TotpEngineTestSuite))
}

func (s *TotpEngineTestSuite) TestCodeAt_ReferenceVectors() {
	vectors := []struct {
		unix int64
		code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, v := range vectors {
		code, err := s.engine.CodeAt(rfcSecret, time.Unix(v.unix, 0))

		assert.NoError(s.T(), err)
		assert.Equal(s.T(), v.code, code)
	}
}

func (s *TotpEngineTestSuite) TestVerify_AcceptsCurrentCode() {
	at := time.Unix(1234567890, 0)

	code, err := s.engine.CodeAt(rfcSecret, at)
	assert.NoError(s.T(), err)

	Expect(s.engine.Verify(rfcSecret, code, at)).To(BeTrue())
}

func (s *TotpEngineTestSuite) TestVerify_AcceptsAdjacentSteps() {
	at := time.Unix(1234567890, 0)

	previous, err := s.engine.CodeAt(rfcSecret, at.Add(-30*time.Second))
	assert.NoError(s.T(), err)

	next, err := s.engine.CodeAt(rfcSecret, at.Add(30*time.Second))
	assert.NoError(s.T(), err)

	Expect(s.engine.Verify(rfcSecret, previous, at)).To(BeTrue())
	Expect(s.engine.Verify(rfcSecret, next, at)).To(BeTrue())
}

func (s *TotpEngineTestSuite) TestVerify_RejectsCodeOutsideSkew() {
	at := time.Unix(1234567890, 0)

	stale, err := s.engine.CodeAt(rfcSecret, at.Add(-90*time.Second))
	assert.NoError(s.T(), err)

	Expect(s.engine.Verify(rfcSecret, stale, at)).To(BeFalse())
}

func (s *TotpEngineTestSuite) TestVerify_RejectsMalformedCodes() {
	at := time.Unix(1234567890, 0)

	Expect(s.engine.Verify(rfcSecret, "", at)).To(BeFalse())
	Expect(s.engine.Verify(rfcSecret, "12345", at)).To(BeFalse())
	Expect(s.engine.Verify(rfcSecret, "12345a", at)).To(BeFalse())
	Expect(s.engine.Verify(rfcSecret, "1234567", at)).To(BeFalse())
}

func (s *TotpEngineTestSuite) TestVerify_RejectsEmptySecret() {
	at := time.Unix(1234567890, 0)

	Expect(s.engine.Verify("", "123456", at)).To(BeFalse())
}

func (s *TotpEngineTestSuite) TestGenerateSecret_IsBase32AndUnique() {
	first, err := s.engine.GenerateSecret()
	assert.NoError(s.T(), err)

	second, err := s.engine.GenerateSecret()
	assert.NoError(s.T(), err)

	assert.NotEqual(s.T(), first, second)
	assert.NotContains(s.T(), first, "=")
	// 20 random bytes encode to 32 base32 characters.
	assert.Len(s.T(), first, 32)
}

func (s *TotpEngineTestSuite) TestProvisioningURI_ContainsIssuerAndSecret() {
	uri := s.engine.ProvisioningURI(rfcSecret, "user@example.com")

	assert.True(s.T(), strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(s.T(), uri, "secret="+rfcSecret)
	assert.Contains(s.T(), uri, "issuer=Task+Management")
	assert.Contains(s.T(), uri, "digits=6")
	assert.Contains(s.T(), uri, "period=30")
	assert.Contains(s.T(), uri, "algorithm=SHA1")
}

func (s *TotpEngineTestSuite) TestQRCodeDataURL_EncodesPNG() {
	uri := s.engine.ProvisioningURI(rfcSecret, "user@example.com")

	dataURL, err := s.engine.QRCodeDataURL(uri)

	assert.NoError(s.T(), err)
	assert.True(s.T(), strings.HasPrefix(dataURL, "data:image/png;base64,"))
}
