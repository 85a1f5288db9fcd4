package lib

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/r3labs/diff/v2"
)

const (
	lambdaHandler     = "bootstrap"
	lambdaRuntime     = lambdatypes.RuntimeProvidedal2023
	lambdaMemory      = 128
	lambdaTimeout     = 5
	lambdaSourceDir   = "lambdas"
	lambdaZipFileName = "lambda.zip"
)

var lambdaClient *lambda.Client
var lambdaClientLock sync.Mutex

func LambdaClient() *lambda.Client {
	lambdaClientLock.Lock()
	defer lambdaClientLock.Unlock()
	if lambdaClient == nil {
		lambdaClient = lambda.NewFromConfig(*EdgeSession())
	}
	return lambdaClient
}

type lambdaConfig struct {
	Runtime string `diff:"runtime"`
	Handler string `diff:"handler"`
	Role    string `diff:"role"`
	Timeout int32  `diff:"timeout"`
	Memory  int32  `diff:"memory"`
}

func lambdaDesiredConfig(arnRole string) lambdaConfig {
	return lambdaConfig{
		Runtime: string(lambdaRuntime),
		Handler: lambdaHandler,
		Role:    arnRole,
		Timeout: lambdaTimeout,
		Memory:  lambdaMemory,
	}
}

func lambdaConfigFrom(fn *lambdatypes.FunctionConfiguration) lambdaConfig {
	return lambdaConfig{
		Runtime: string(fn.Runtime),
		Handler: aws.ToString(fn.Handler),
		Role:    aws.ToString(fn.Role),
		Timeout: aws.ToInt32(fn.Timeout),
		Memory:  aws.ToInt32(fn.MemorySize),
	}
}

// lambdaConfigChanges describes, one line per field, how current must change
// to become desired.
func lambdaConfigChanges(current, desired lambdaConfig) ([]string, error) {
	changelog, err := diff.Diff(current, desired)
	if err != nil {
		return nil, err
	}
	var changes []string
	for _, change := range changelog {
		changes = append(changes, fmt.Sprintf("%s: %v => %v", strings.Join(change.Path, "."), change.From, change.To))
	}
	return changes, nil
}

// LambdaQualifiedArn pins a function arn to a published version, replacing
// any qualifier already present.
func LambdaQualifiedArn(arn, version string) string {
	parts := strings.Split(arn, ":")
	if len(parts) > 7 {
		parts = parts[:7]
	}
	return strings.Join(append(parts, version), ":")
}

func LambdaZipFile(name string) string {
	return filepath.Join(os.TempDir(), name, lambdaZipFileName)
}

func lambdaZipBinary(pth string) ([]byte, error) {
	data, err := os.ReadFile(pth)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	header := &zip.FileHeader{
		Name:   lambdaHandler,
		Method: zip.Deflate,
	}
	header.SetMode(0755)
	f, err := w.CreateHeader(header)
	if err != nil {
		return nil, err
	}
	_, err = f.Write(data)
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lambdaSourceRoot walks up from start to the directory holding
// lambdas/<name>, so builds work from anywhere inside the repo.
func lambdaSourceRoot(start, name string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if Exists(filepath.Join(dir, lambdaSourceDir, name, "main.go")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no such lambda source dir: %s above %s", filepath.Join(lambdaSourceDir, name), start)
		}
		dir = parent
	}
}

// LambdaBuildZip compiles lambdas/<name> for the lambda runtime and returns
// the deployment zip.
func LambdaBuildZip(name string, preview bool) ([]byte, error) {
	cwd, err := os.Getwd()
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	root, err := lambdaSourceRoot(cwd, name)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	src := filepath.Join(lambdaSourceDir, name)
	zipFile := LambdaZipFile(name)
	dir := filepath.Dir(zipFile)
	if preview {
		Logger.Println(PreviewString(preview)+"zipped go binary:", zipFile)
		return nil, nil
	}
	err = os.RemoveAll(dir)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	bin := filepath.Join(dir, lambdaHandler)
	err = shellAt(root, "CGO_ENABLED=0 GOOS=linux GOARCH=amd64 go build -ldflags='-s -w' -tags 'lambda.norpc netgo osusergo' -o %s ./%s", bin, src)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	zipBytes, err := lambdaZipBinary(bin)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	err = os.WriteFile(zipFile, zipBytes, 0644)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	Logger.Println("zipped go binary:", zipFile)
	return zipBytes, nil
}

func lambdaGetFunction(ctx context.Context, name string) (*lambdatypes.FunctionConfiguration, error) {
	var fn *lambdatypes.FunctionConfiguration
	err := Retry(ctx, func() error {
		out, err := LambdaClient().GetFunction(ctx, &lambda.GetFunctionInput{
			FunctionName: aws.String(name),
		})
		if err != nil {
			var notFound *lambdatypes.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return nil
			}
			return err
		}
		fn = out.Configuration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// LambdaEnsure deploys a redirect as a published function version and returns
// the version's qualified arn, which is what edge associations reference.
func LambdaEnsure(ctx context.Context, r Redirect, preview bool) (string, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "LambdaEnsure"}
		d.Start()
		defer d.End()
	}
	arnRole, err := IamEnsureEdgeRole(ctx, r.Name, preview)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	zipBytes, err := LambdaBuildZip(r.Name, preview)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	fn, err := lambdaGetFunction(ctx, r.Name)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	desired := lambdaDesiredConfig(arnRole)
	if fn == nil {
		return lambdaCreateFunction(ctx, r.Name, desired, zipBytes, preview)
	}
	changes, err := lambdaConfigChanges(lambdaConfigFrom(fn), desired)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	for _, change := range changes {
		Logger.Println(PreviewString(preview)+"lambda config drift:", r.Name, change)
	}
	if len(changes) > 0 && !preview {
		err := Retry(ctx, func() error {
			_, err := LambdaClient().UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
				FunctionName: aws.String(r.Name),
				Runtime:      lambdatypes.Runtime(desired.Runtime),
				Handler:      aws.String(desired.Handler),
				Role:         aws.String(desired.Role),
				Timeout:      aws.Int32(desired.Timeout),
				MemorySize:   aws.Int32(desired.Memory),
			})
			return err
		})
		if err != nil {
			Logger.Println("error:", err)
			return "", err
		}
		Logger.Println("updated function config:", r.Name)
	}
	if preview {
		Logger.Println(PreviewString(preview)+"updated function code:", r.Name)
		return aws.ToString(fn.FunctionArn), nil
	}
	var version string
	err = Retry(ctx, func() error {
		out, err := LambdaClient().UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
			FunctionName:  aws.String(r.Name),
			ZipFile:       zipBytes,
			Architectures: []lambdatypes.Architecture{lambdatypes.ArchitectureX8664},
			Publish:       true,
		})
		if err != nil {
			return err
		}
		version = aws.ToString(out.Version)
		return nil
	})
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	Logger.Println("updated function code:", r.Name, "version:", version)
	return LambdaQualifiedArn(aws.ToString(fn.FunctionArn), version), nil
}

func lambdaCreateFunction(ctx context.Context, name string, desired lambdaConfig, zipBytes []byte, preview bool) (string, error) {
	if preview {
		account, err := StsAccount(ctx)
		if err != nil {
			Logger.Println("error:", err)
			return "", err
		}
		Logger.Println(PreviewString(preview)+"created function:", name)
		return fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", EdgeRegion, account, name), nil
	}
	var arn string
	// new roles take a while to become assumable by lambda, so creation is retried
	err := Retry(ctx, func() error {
		out, err := LambdaClient().CreateFunction(ctx, &lambda.CreateFunctionInput{
			FunctionName:  aws.String(name),
			Runtime:       lambdatypes.Runtime(desired.Runtime),
			Handler:       aws.String(desired.Handler),
			Role:          aws.String(desired.Role),
			Timeout:       aws.Int32(desired.Timeout),
			MemorySize:    aws.Int32(desired.Memory),
			Architectures: []lambdatypes.Architecture{lambdatypes.ArchitectureX8664},
			Code:          &lambdatypes.FunctionCode{ZipFile: zipBytes},
			Publish:       true,
		})
		if err != nil {
			return err
		}
		arn = LambdaQualifiedArn(aws.ToString(out.FunctionArn), aws.ToString(out.Version))
		return nil
	})
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	Logger.Println("created function:", name)
	return arn, nil
}

func LambdaListFunctions(ctx context.Context) ([]lambdatypes.FunctionConfiguration, error) {
	var fns []lambdatypes.FunctionConfiguration
	paginator := lambda.NewListFunctionsPaginator(LambdaClient(), &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		fns = append(fns, out.Functions...)
	}
	return fns, nil
}

func LambdaInvoke(ctx context.Context, name string, payload []byte) (*lambda.InvokeOutput, error) {
	out, err := LambdaClient().Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(name),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		LogType:        lambdatypes.LogTypeTail,
		Payload:        payload,
	})
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return out, nil
}

func LambdaDeleteFunction(ctx context.Context, name string, preview bool) error {
	if !preview {
		err := Retry(ctx, func() error {
			_, err := LambdaClient().DeleteFunction(ctx, &lambda.DeleteFunctionInput{
				FunctionName: aws.String(name),
			})
			if err != nil {
				var notFound *lambdatypes.ResourceNotFoundException
				if errors.As(err, &notFound) {
					return nil
				}
				return err
			}
			return nil
		})
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
	}
	Logger.Println(PreviewString(preview)+"deleted function:", name)
	return nil
}
