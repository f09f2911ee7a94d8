package transport

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// Transport's Do method gives it the same shape as
// azcore/policy.Transporter, so it can be assigned directly to an Azure
// SDK client's ClientOptions.Transport without an adapter -- the
// integration point this package exists to serve.
var _ policy.Transporter = (*Transport)(nil)
