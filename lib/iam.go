package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

const (
	iamBasicExecutionPolicyArn = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"
	iamEdgeRolePath            = "/edge-redirects/"
)

var iamClient *iam.Client
var iamClientLock sync.Mutex

func IamClient() *iam.Client {
	iamClientLock.Lock()
	defer iamClientLock.Unlock()
	if iamClient == nil {
		iamClient = iam.NewFromConfig(*EdgeSession())
	}
	return iamClient
}

type iamStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    string              `json:"Action"`
}

type iamPolicyDocument struct {
	Version   string         `json:"Version"`
	Statement []iamStatement `json:"Statement"`
}

// iamEdgeAssumePolicyDocument trusts both the regional and the replicated
// edge lambda services.
func iamEdgeAssumePolicyDocument() (string, error) {
	doc := iamPolicyDocument{
		Version: "2012-10-17",
		Statement: []iamStatement{{
			Effect: "Allow",
			Principal: map[string][]string{
				"Service": {"lambda.amazonaws.com", "edgelambda.amazonaws.com"},
			},
			Action: "sts:AssumeRole",
		}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func iamPolicyEqual(a, b string) (bool, error) {
	var aVal interface{}
	err := json.Unmarshal([]byte(a), &aVal)
	if err != nil {
		return false, err
	}
	var bVal interface{}
	err = json.Unmarshal([]byte(b), &bVal)
	if err != nil {
		return false, err
	}
	return reflect.DeepEqual(aVal, bVal), nil
}

func IamEdgeRoleName(name string) string {
	return name + "-role"
}

// IamEnsureEdgeRole creates or repairs the execution role for an edge
// function, returning its arn.
func IamEnsureEdgeRole(ctx context.Context, name string, preview bool) (string, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "IamEnsureEdgeRole"}
		d.Start()
		defer d.End()
	}
	roleName := IamEdgeRoleName(name)
	policyDocument, err := iamEdgeAssumePolicyDocument()
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	out, err := IamClient().GetRole(ctx, &iam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		var notFound *iamtypes.NoSuchEntityException
		if !errors.As(err, &notFound) {
			Logger.Println("error:", err)
			return "", err
		}
		return iamCreateEdgeRole(ctx, roleName, policyDocument, preview)
	}
	if *out.Role.Path != iamEdgeRolePath {
		err := fmt.Errorf("role path mismatch: %s %s != %s", roleName, *out.Role.Path, iamEdgeRolePath)
		Logger.Println("error:", err)
		return "", err
	}
	document, err := url.QueryUnescape(aws.ToString(out.Role.AssumeRolePolicyDocument))
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	equal, err := iamPolicyEqual(document, policyDocument)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	if !equal {
		if !preview {
			_, err := IamClient().UpdateAssumeRolePolicy(ctx, &iam.UpdateAssumeRolePolicyInput{
				RoleName:       aws.String(roleName),
				PolicyDocument: aws.String(policyDocument),
			})
			if err != nil {
				Logger.Println("error:", err)
				return "", err
			}
		}
		Logger.Println(PreviewString(preview)+"updated role trust policy:", roleName)
	}
	err = iamEnsureBasicExecution(ctx, roleName, preview)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	return *out.Role.Arn, nil
}

func iamCreateEdgeRole(ctx context.Context, roleName, policyDocument string, preview bool) (string, error) {
	arn := ""
	if !preview {
		out, err := IamClient().CreateRole(ctx, &iam.CreateRoleInput{
			Path:                     aws.String(iamEdgeRolePath),
			RoleName:                 aws.String(roleName),
			AssumeRolePolicyDocument: aws.String(policyDocument),
		})
		if err != nil {
			Logger.Println("error:", err)
			return "", err
		}
		arn = *out.Role.Arn
		_, err = IamClient().AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(iamBasicExecutionPolicyArn),
		})
		if err != nil {
			Logger.Println("error:", err)
			return "", err
		}
	} else {
		account, err := StsAccount(ctx)
		if err != nil {
			Logger.Println("error:", err)
			return "", err
		}
		arn = fmt.Sprintf("arn:aws:iam::%s:role%s%s", account, iamEdgeRolePath, roleName)
	}
	Logger.Println(PreviewString(preview)+"created role:", roleName)
	Logger.Println(PreviewString(preview)+"attached role policy:", roleName, iamBasicExecutionPolicyArn)
	return arn, nil
}

func iamEnsureBasicExecution(ctx context.Context, roleName string, preview bool) error {
	out, err := IamClient().ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	for _, policy := range out.AttachedPolicies {
		if aws.ToString(policy.PolicyArn) == iamBasicExecutionPolicyArn {
			return nil
		}
	}
	if !preview {
		_, err := IamClient().AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(iamBasicExecutionPolicyArn),
		})
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
	}
	Logger.Println(PreviewString(preview)+"attached role policy:", roleName, iamBasicExecutionPolicyArn)
	return nil
}

func IamDeleteEdgeRole(ctx context.Context, name string, preview bool) error {
	roleName := IamEdgeRoleName(name)
	if !preview {
		_, err := IamClient().DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(iamBasicExecutionPolicyArn),
		})
		if err != nil {
			var notFound *iamtypes.NoSuchEntityException
			if !errors.As(err, &notFound) {
				Logger.Println("error:", err)
				return err
			}
		}
		_, err = IamClient().DeleteRole(ctx, &iam.DeleteRoleInput{
			RoleName: aws.String(roleName),
		})
		if err != nil {
			var notFound *iamtypes.NoSuchEntityException
			if !errors.As(err, &notFound) {
				Logger.Println("error:", err)
				return err
			}
			return nil
		}
	}
	Logger.Println(PreviewString(preview)+"deleted role:", roleName)
	return nil
}
