package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ConfirmSigner asks on a terminal before handing the call to Next. Any
// answer other than yes cancels without contacting Next.
type ConfirmSigner struct {
	Next Signer
	In   io.Reader
	Out  io.Writer
}

var _ Signer = (*ConfirmSigner)(nil)

func (c *ConfirmSigner) Sign(ctx context.Context, call ContractCall) SignResult {
	fmt.Fprintf(c.Out, "%s\nSign and broadcast? [y/N] ", call.Summary())

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return FailedResult(fmt.Errorf("read confirmation: %w", err))
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return c.Next.Sign(ctx, call)
	}
	return CancelledResult()
}
