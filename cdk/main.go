package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type ScorecardStackProps struct {
	awscdk.StackProps
}

// NewScorecardStack deploys the scorecard as one Lambda behind API Gateway.
// Lambda instances share no memory, so POSTGRES_DSN must point at a
// database for boards to survive between requests.
func NewScorecardStack(scope constructs.Construct, id string, props *ScorecardStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	lambdaFn := awslambda.NewFunction(stack, jsii.String("ScorecardApi"), &awslambda.FunctionProps{
		Runtime: awslambda.Runtime_PROVIDED_AL2023(),
		Handler: jsii.String("bootstrap"),
		Code:    awslambda.Code_FromAsset(jsii.String("../"), nil),
		Timeout: awscdk.Duration_Seconds(jsii.Number(10)),
		Environment: &map[string]*string{
			"APP":                     jsii.String("prod"),
			"POSTGRES_DSN":            jsii.String(os.Getenv("POSTGRES_DSN")),
			"POSTGRES_MIGRATIONS_DIR": jsii.String("migrations/postgres"),
			"BOARD_TTL_HOURS":         jsii.String(envOr("BOARD_TTL_HOURS", "24")),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("ScorecardApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	app := awscdk.NewApp(nil)
	NewScorecardStack(app, "ScorecardStack", &ScorecardStackProps{})
	app.Synth(nil)
}
