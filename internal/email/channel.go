package email

import (
	"fmt"
	"regexp"
)

// InvalidAddressError reports a recipient address that does not belong to the
// configured domain.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid email format: %s", e.Address)
}

// ChannelFromAddress derives the destination channel from a recipient
// address: the local-part of "<local>@<domain>", with the domain matched as
// an anchored literal. The local-part is returned verbatim; whether it names
// a real channel is only discovered at post time.
func ChannelFromAddress(address, domain string) (string, error) {
	re := regexp.MustCompile(`^(.+)@` + regexp.QuoteMeta(domain) + `$`)
	m := re.FindStringSubmatch(address)
	if m == nil {
		return "", &InvalidAddressError{Address: address}
	}
	return m[1], nil
}
