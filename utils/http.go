// utils/http.go
package utils

import (
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
)

// HTTPClient is shared by outbound clients (R2). It stays buildable so the
// SDK can still apply AWS_CA_BUNDLE and other transport options to it.
var HTTPClient = awshttp.NewBuildableClient().WithTimeout(60 * time.Second)
