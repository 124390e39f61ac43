package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muurk/adb-autoconnect/internal/address"
)

func addrs(ss ...string) []address.Address {
	out := make([]address.Address, len(ss))
	for i, s := range ss {
		out[i] = address.MustParse(s)
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []address.Address
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "header only",
			text: "List of discovered mdns services\n",
			want: nil,
		},
		{
			name: "single service",
			text: "List of discovered mdns services\n" +
				"adb-R58M12ABCDE-x1y2z3\t_adb-tls-connect._tcp.\t192.168.1.5:37123\n",
			want: addrs("192.168.1.5:37123"),
		},
		{
			name: "pairing services are ignored",
			text: "adb-R58M12ABCDE-x1y2z3\t_adb-tls-pairing._tcp.\t192.168.1.5:41000\n" +
				"adb-R58M12ABCDE-x1y2z3\t_adb-tls-connect._tcp.\t192.168.1.5:37123\n",
			want: addrs("192.168.1.5:37123"),
		},
		{
			name: "lines without a valid address are dropped",
			text: "adb-a\t_adb-tls-connect._tcp.\t192.168.1.300:37123\n" +
				"adb-b\t_adb-tls-connect._tcp.\tfe80::1:37123\n" +
				"adb-c\t_adb-tls-connect._tcp.\n" +
				"adb-d\t_adb-tls-connect._tcp.\t10.0.0.4:0\n",
			want: nil,
		},
		{
			name: "higher instance count ranks first",
			text: "adb-a\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n" +
				"adb-b (2)\t_adb-tls-connect._tcp.\t10.0.0.2:5555\n" +
				"adb-c (5)\t_adb-tls-connect._tcp.\t10.0.0.3:5555\n",
			want: addrs("10.0.0.3:5555", "10.0.0.2:5555", "10.0.0.1:5555"),
		},
		{
			name: "equal counts keep text order",
			text: "adb-z\t_adb-tls-connect._tcp.\t10.0.0.9:5555\n" +
				"adb-a\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n" +
				"adb-m\t_adb-tls-connect._tcp.\t10.0.0.5:5555\n",
			want: addrs("10.0.0.9:5555", "10.0.0.1:5555", "10.0.0.5:5555"),
		},
		{
			name: "first valid address on a line wins",
			text: "adb-a _adb-tls-connect._tcp. 10.0.0.1:5555 10.0.0.2:5555\n",
			want: addrs("10.0.0.1:5555"),
		},
		{
			name: "windows line endings and surrounding space",
			text: "  adb-a\t_adb-tls-connect._tcp.\t10.0.0.1:5555  \r\n\r\n",
			want: addrs("10.0.0.1:5555"),
		},
		{
			name: "port is canonicalized",
			text: "adb-a\t_adb-tls-connect._tcp.\t10.0.0.1:05555\n",
			want: addrs("10.0.0.1:5555"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.text))
		})
	}
}

func TestDecode_DeduplicationLaw(t *testing.T) {
	low := "adb-a (3)\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n"
	high := "adb-a (5)\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n"

	for _, text := range []string{low + high, high + low} {
		candidates := DecodeCandidates(text)
		if assert.Len(t, candidates, 1) {
			assert.Equal(t, 5, candidates[0].InstanceCount)
		}
	}

	tie := "first\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n" +
		"second\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n"
	candidates := DecodeCandidates(tie)
	if assert.Len(t, candidates, 1) {
		assert.Equal(t, "first", candidates[0].ServiceName)
		assert.Equal(t, 0, candidates[0].SourceOrder)
	}
}

func TestDecode_DuplicateRerankedByBestCount(t *testing.T) {
	text := "adb-a\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n" +
		"adb-b (2)\t_adb-tls-connect._tcp.\t10.0.0.2:5555\n" +
		"adb-a (4)\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n"

	assert.Equal(t, addrs("10.0.0.1:5555", "10.0.0.2:5555"), Decode(text))
}

func TestDecode_Deterministic(t *testing.T) {
	text := "adb-a (1)\t_adb-tls-connect._tcp.\t10.0.0.1:5555\n" +
		"adb-b (1)\t_adb-tls-connect._tcp.\t10.0.0.2:5555\n" +
		"adb-c (1)\t_adb-tls-connect._tcp.\t10.0.0.3:5555\n" +
		"adb-d (1)\t_adb-tls-connect._tcp.\t10.0.0.4:5555\n"

	first := Decode(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Decode(text))
	}
}

func TestDecodeCandidates_Fields(t *testing.T) {
	text := "List of discovered mdns services\n" +
		"adb-R58M12ABCDE-x1y2z3 (2)\t_adb-tls-connect._tcp.\t192.168.1.5:37123\n"

	candidates := DecodeCandidates(text)
	if assert.Len(t, candidates, 1) {
		c := candidates[0]
		assert.Equal(t, address.Address("192.168.1.5:37123"), c.Address)
		assert.Equal(t, "adb-R58M12ABCDE-x1y2z3", c.ServiceName)
		assert.Equal(t, 2, c.InstanceCount)
		assert.Equal(t, 1, c.SourceOrder)
		assert.Equal(t, "adb-R58M12ABCDE-x1y2z3 at 192.168.1.5:37123 (count 2)", c.String())
	}
}

func TestDecodeCandidates_NoServiceName(t *testing.T) {
	candidates := DecodeCandidates("_adb-tls-connect._tcp. 10.0.0.1:5555\n")
	if assert.Len(t, candidates, 1) {
		assert.Empty(t, candidates[0].ServiceName)
		assert.Equal(t, "10.0.0.1:5555 (count 0)", candidates[0].String())
	}
}

func TestCountPattern(t *testing.T) {
	tests := []struct {
		token string
		match bool
		count string
	}{
		{"(2)", true, "2"},
		{"(15)", true, "15"},
		{"name(3)", true, "3"},
		{"()", false, ""},
		{"(x)", false, ""},
		{"2", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m := countPattern.FindStringSubmatch(tt.token)
			if !tt.match {
				assert.Nil(t, m)
				return
			}
			if assert.NotNil(t, m) {
				assert.Equal(t, tt.count, m[1])
			}
		})
	}
}
