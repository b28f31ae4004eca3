package detect

import (
	"sort"
	"time"

	"retail-sentinel/internal/models"
)

// 跨流按 (station_id, timestamp) 的区间连接：先分站点排序，再二分定位窗口。
// 排序使用稳定排序，保证同一时间戳内保持输入顺序，首个匹配的裁决不变。

// posIndex 按站点分组、按时间排序的 POS 视图
type posIndex map[string][]models.POSTransaction

func indexPOS(pos []models.POSTransaction) posIndex {
	ix := make(posIndex)
	for _, p := range pos {
		ix[p.StationID] = append(ix[p.StationID], p)
	}
	for station := range ix {
		recs := ix[station]
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		})
	}
	return ix
}

// window 返回站点上 [from, to] 闭区间内的记录（时间升序）
func (ix posIndex) window(station string, from, to time.Time) []models.POSTransaction {
	recs := ix[station]
	lo := sort.Search(len(recs), func(i int) bool {
		return !recs[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(recs), func(i int) bool {
		return recs[i].Timestamp.After(to)
	})
	if lo >= hi {
		return nil
	}
	return recs[lo:hi]
}

// recognitionIndex 按站点分组、按时间排序的识别流视图
type recognitionIndex map[string][]models.Recognition

func indexRecognition(recognitions []models.Recognition) recognitionIndex {
	ix := make(recognitionIndex)
	for _, r := range recognitions {
		ix[r.StationID] = append(ix[r.StationID], r)
	}
	for station := range ix {
		recs := ix[station]
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		})
	}
	return ix
}

// window 返回站点上 [from, to] 闭区间内的识别记录（时间升序）
func (ix recognitionIndex) window(station string, from, to time.Time) []models.Recognition {
	recs := ix[station]
	lo := sort.Search(len(recs), func(i int) bool {
		return !recs[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(recs), func(i int) bool {
		return recs[i].Timestamp.After(to)
	})
	if lo >= hi {
		return nil
	}
	return recs[lo:hi]
}

// sortedPOSByTime 全局按时间排序的 POS 副本（库存核对的半开区间统计用）
func sortedPOSByTime(pos []models.POSTransaction) []models.POSTransaction {
	out := make([]models.POSTransaction, len(pos))
	copy(out, pos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// posRange 返回 [from, to) 半开区间内的记录
func posRange(sorted []models.POSTransaction, from, to time.Time) []models.POSTransaction {
	lo := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].Timestamp.Before(to)
	})
	if lo >= hi {
		return nil
	}
	return sorted[lo:hi]
}
