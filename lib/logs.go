package lib

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

var logsClients = make(map[string]*cloudwatchlogs.Client)
var logsClientsLock sync.Mutex

func LogsClientRegion(region string) (*cloudwatchlogs.Client, error) {
	logsClientsLock.Lock()
	defer logsClientsLock.Unlock()
	client, ok := logsClients[region]
	if !ok {
		cfg, err := SessionRegion(region)
		if err != nil {
			return nil, err
		}
		client = cloudwatchlogs.NewFromConfig(*cfg)
		logsClients[region] = client
	}
	return client, nil
}

// LogsGroupPrefixes are the log group name prefixes a function writes to:
// its own group for direct invokes, and the region-prefixed group used by
// replicas, which lives in whichever region served the request.
func LogsGroupPrefixes(name string) []string {
	return []string{
		"/aws/lambda/" + name,
		fmt.Sprintf("/aws/lambda/%s.%s", EdgeRegion, name),
	}
}

// LogsRegions dedupes the regions to search, always including the edge region.
func LogsRegions(regions []string) []string {
	result := []string{EdgeRegion}
	for _, region := range regions {
		if region != "" && !Contains(result, region) {
			result = append(result, region)
		}
	}
	return result
}

func LogsListGroups(ctx context.Context, client *cloudwatchlogs.Client, prefix string) ([]string, error) {
	var names []string
	paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(client, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		for _, group := range out.LogGroups {
			names = append(names, aws.ToString(group.LogGroupName))
		}
	}
	return names, nil
}

type LogsLine struct {
	Region    string
	Group     string
	Timestamp time.Time
	Message   string
}

func (l LogsLine) String() string {
	return fmt.Sprintf("%s %s %s %s", l.Timestamp.UTC().Format(time.RFC3339), l.Region, l.Group, strings.TrimRight(l.Message, "\n"))
}

// LogsRecent returns up to numLines of the newest log lines written by a
// function since the given time across the given regions, oldest first.
func LogsRecent(ctx context.Context, name string, regions []string, since time.Time, numLines int) ([]LogsLine, error) {
	var lines []LogsLine
	for _, region := range LogsRegions(regions) {
		client, err := LogsClientRegion(region)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		regionLines, err := logsRecentRegion(ctx, client, region, name, since)
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		lines = append(lines, regionLines...)
	}
	return logsTail(lines, numLines), nil
}

func logsRecentRegion(ctx context.Context, client *cloudwatchlogs.Client, region, name string, since time.Time) ([]LogsLine, error) {
	var groups []string
	for _, prefix := range LogsGroupPrefixes(name) {
		names, err := LogsListGroups(ctx, client, prefix)
		if err != nil {
			return nil, err
		}
		for _, group := range names {
			if group == prefix && !Contains(groups, group) {
				groups = append(groups, group)
			}
		}
	}
	var lines []LogsLine
	for _, group := range groups {
		paginator := cloudwatchlogs.NewFilterLogEventsPaginator(client, &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName: aws.String(group),
			StartTime:    aws.Int64(since.UnixMilli()),
		})
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				var notFound *cwltypes.ResourceNotFoundException
				if errors.As(err, &notFound) {
					break
				}
				return nil, err
			}
			for _, event := range out.Events {
				lines = append(lines, LogsLine{
					Region:    region,
					Group:     group,
					Timestamp: time.UnixMilli(aws.ToInt64(event.Timestamp)),
					Message:   aws.ToString(event.Message),
				})
			}
		}
	}
	return lines, nil
}

func logsTail(lines []LogsLine, numLines int) []LogsLine {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Timestamp.Before(lines[j].Timestamp)
	})
	if numLines > 0 && len(lines) > numLines {
		lines = lines[len(lines)-numLines:]
	}
	return lines
}
