// Package aggregate 从标准化原始表派生按层级、按指标的时间序列。
//
// 所有函数均为纯函数：输入为已持久化的季度原始表，输出为总表或单实体序列，
// 由调用方负责落盘。单个季度缺行只影响该季度对该聚合的贡献，不会中断整体处理。
package aggregate
